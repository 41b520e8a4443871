package kijijifetcher

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"rentals-data-platform/internal/core/domain"

	"github.com/PuerkitoBio/goquery"
)

// Строгие структуры для embedded JSON блоков вместо индексации
// по нетипизированным вложенным словарям. Любое структурное
// отклонение превращается в sentinel-ошибку из domain/errors.go.

// searchItemList - JSON-LD блок страницы поиска (schema.org ItemList).
type searchItemList struct {
	ItemListElement []searchItem `json:"itemListElement"`
}

type searchItem struct {
	Item struct {
		URL string `json:"url"`
	} `json:"item"`
}

// nextDataRoot - каркас блока __NEXT_DATA__ detail-страницы.
type nextDataRoot struct {
	Props struct {
		PageProps struct {
			ListingID      json.Number                `json:"listingId"`
			ActivationDate string                     `json:"activationDate"`
			ApolloState    map[string]json.RawMessage `json:"__APOLLO_STATE__"`
		} `json:"pageProps"`
	} `json:"props"`
}

// listingState - запись RealEstateListing:{id} внутри Apollo state.
type listingState struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Price       struct {
		Amount *float64 `json:"amount"`
	} `json:"price"`
	ActivationDate string   `json:"activationDate"`
	ImageURLs      []string `json:"imageUrls"`
	Location       struct {
		Address     string `json:"address"`
		Coordinates struct {
			Latitude  *float64 `json:"latitude"`
			Longitude *float64 `json:"longitude"`
		} `json:"coordinates"`
		NeighbourhoodInfo struct {
			Ref string `json:"__ref"`
		} `json:"neighbourhoodInfo"`
	} `json:"location"`
	Attributes struct {
		All []attributeEntry `json:"all"`
	} `json:"attributes"`
}

type attributeEntry struct {
	Name   string `json:"name"`
	Values []any  `json:"values"`
}

// neighbourhoodState - запись района, на которую ссылается listing через __ref.
type neighbourhoodState struct {
	Name   string `json:"name"`
	Scores struct {
		Transportation struct {
			Walk    scoreEntry `json:"walk"`
			Transit scoreEntry `json:"transit"`
			Cycle   scoreEntry `json:"cycle"`
		} `json:"transportation"`
	} `json:"scores"`
}

type scoreEntry struct {
	Score *float64 `json:"score"`
}

// detailState - результат строгого разбора detail-страницы:
// сама запись плюс state blob для разрешения ссылок.
type detailState struct {
	ListingID string
	Listing   listingState
	Apollo    map[string]json.RawMessage
	// activationDate с уровня pageProps - fallback, если его нет в записи
	FallbackActivation string
}

// decodeSearchItemList извлекает JSON-LD список объявлений со страницы поиска.
func decodeSearchItemList(body []byte) (*searchItemList, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to parse search page html: %w", err)
	}

	var raw string
	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		text := strings.TrimSpace(s.Text())
		if strings.Contains(text, "itemListElement") {
			raw = text
			return false
		}
		return true
	})
	if raw == "" {
		return nil, domain.ErrNoStructuredData
	}

	var list searchItemList
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		return nil, fmt.Errorf("malformed search json-ld: %w", err)
	}
	return &list, nil
}

// decodeNextData строго разбирает __NEXT_DATA__ detail-страницы
// и находит запись объявления в Apollo state по его ID.
func decodeNextData(body []byte) (*detailState, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to parse detail page html: %w", err)
	}

	raw := strings.TrimSpace(doc.Find(`script#__NEXT_DATA__`).Text())
	if raw == "" {
		return nil, domain.ErrNoStructuredData
	}

	var root nextDataRoot
	if err := json.Unmarshal([]byte(raw), &root); err != nil {
		return nil, fmt.Errorf("malformed __NEXT_DATA__ block: %w", err)
	}

	listingID := root.Props.PageProps.ListingID.String()
	if listingID == "" {
		return nil, domain.ErrNoListingID
	}

	apollo := root.Props.PageProps.ApolloState
	rawListing, ok := apollo[fmt.Sprintf("RealEstateListing:%s", listingID)]
	if !ok {
		return nil, domain.ErrNoListingRecord
	}

	var listing listingState
	if err := json.Unmarshal(rawListing, &listing); err != nil {
		return nil, fmt.Errorf("malformed listing record %s: %w", listingID, err)
	}

	return &detailState{
		ListingID:          listingID,
		Listing:            listing,
		Apollo:             apollo,
		FallbackActivation: root.Props.PageProps.ActivationDate,
	}, nil
}

// resolveNeighbourhood разрешает __ref объявления в запись района.
// Отсутствующая или битая ссылка дает nil: имя и все три score остаются пустыми.
func (s *detailState) resolveNeighbourhood() *neighbourhoodState {
	ref := s.Listing.Location.NeighbourhoodInfo.Ref
	if ref == "" {
		return nil
	}
	raw, ok := s.Apollo[ref]
	if !ok {
		return nil
	}
	var nb neighbourhoodState
	if err := json.Unmarshal(raw, &nb); err != nil {
		return nil
	}
	return &nb
}
