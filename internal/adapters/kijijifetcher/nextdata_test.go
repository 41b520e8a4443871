package kijijifetcher

import (
	"testing"

	"rentals-data-platform/internal/core/domain"
)

func searchPage(urls ...string) []byte {
	items := ""
	for i, u := range urls {
		if i > 0 {
			items += ","
		}
		items += `{"@type": "ListItem", "item": {"url": "` + u + `"}}`
	}
	return []byte(`<html><head>
		<script type="application/ld+json">{"@type": "WebSite", "name": "Kijiji"}</script>
		<script type="application/ld+json">{"@type": "ItemList", "itemListElement": [` + items + `]}</script>
	</head><body></body></html>`)
}

func TestDecodeSearchItemList(t *testing.T) {
	body := searchPage(
		"https://www.kijiji.ca/v-apartments-condos/city-of-toronto/a/1001",
		"https://www.kijiji.ca/v-apartments-condos/city-of-toronto/b/1002",
	)

	list, err := decodeSearchItemList(body)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(list.ItemListElement) != 2 {
		t.Fatalf("items: got %d, want 2", len(list.ItemListElement))
	}
	if list.ItemListElement[0].Item.URL != "https://www.kijiji.ca/v-apartments-condos/city-of-toronto/a/1001" {
		t.Errorf("first url: got %q", list.ItemListElement[0].Item.URL)
	}
}

func TestDecodeSearchItemListNoStructuredData(t *testing.T) {
	body := []byte(`<html><head><script type="application/ld+json">{"@type": "WebSite"}</script></head></html>`)
	_, err := decodeSearchItemList(body)
	if err != domain.ErrNoStructuredData {
		t.Errorf("got %v, want ErrNoStructuredData", err)
	}
}

func TestDecodeNextDataMissingListingRecord(t *testing.T) {
	body := []byte(`<html><head><script id="__NEXT_DATA__" type="application/json">
		{"props": {"pageProps": {"listingId": 999, "__APOLLO_STATE__": {"Other:1": {}}}}}
	</script></head></html>`)
	_, err := decodeNextData(body)
	if err != domain.ErrNoListingRecord {
		t.Errorf("got %v, want ErrNoListingRecord", err)
	}
}

func TestDecodeNextDataMissingListingID(t *testing.T) {
	body := []byte(`<html><head><script id="__NEXT_DATA__" type="application/json">
		{"props": {"pageProps": {"__APOLLO_STATE__": {}}}}
	</script></head></html>`)
	_, err := decodeNextData(body)
	if err != domain.ErrNoListingID {
		t.Errorf("got %v, want ErrNoListingID", err)
	}
}

func TestResolveNeighbourhoodBadRef(t *testing.T) {
	body := detailPage(250000, "2025-06-14T08:03:15.000Z", sampleAttributes)
	state, err := decodeNextData(body)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	state.Listing.Location.NeighbourhoodInfo.Ref = "Neighbourhood:missing"
	if nb := state.resolveNeighbourhood(); nb != nil {
		t.Errorf("dangling ref should resolve to nil, got %+v", nb)
	}
}
