package kijijifetcher

import (
	"fmt"
	"net/http"
	"time"

	"rentals-data-platform/internal/constants"
	"rentals-data-platform/internal/core/domain"

	"github.com/gocolly/colly/v2"
	"github.com/gocolly/colly/v2/extensions"
)

// KijijiFetcherAdapter отвечает за все взаимодействия с сайтом Kijiji
type KijijiFetcherAdapter struct {
	// родительский коллектор, который разделяет лимиты;
	// на каждый логический запрос создается Clone()
	collector *colly.Collector
	transport *http.Transport
	baseURL   string
	userAgent string
}

// Config - настройки адаптера
type Config struct {
	UserAgent string
	// Базовая задержка вежливости между запросами, секунды.
	// Фактическая задержка выбирается из [0.5, 1.5] * DownloadDelaySeconds.
	DownloadDelaySeconds float64
}

// NewKijijiFetcherAdapter - конструктор
func NewKijijiFetcherAdapter(cfg Config) (*KijijiFetcherAdapter, error) {
	if cfg.UserAgent == "" {
		return nil, fmt.Errorf("KijijiFetcherAdapter: user agent is required")
	}

	// родительский коллектор
	c := colly.NewCollector(
		colly.AllowedDomains("www.kijiji.ca", "kijiji.ca"),
		colly.AllowURLRevisit(),
		colly.UserAgent(cfg.UserAgent),
	)

	// Отдельный transport, чтобы Close() мог погасить connection pool
	transport := &http.Transport{}
	c.WithTransport(transport)
	c.SetRequestTimeout(10 * time.Second)

	// Правило наследуется всеми клонами коллектора.
	// Delay + RandomDelay дают джиттер в диапазоне [0.5, 1.5] * delay.
	delay := time.Duration(cfg.DownloadDelaySeconds * float64(time.Second))
	err := c.Limit(&colly.LimitRule{
		DomainGlob:  "*kijiji.ca",
		Parallelism: 1,
		Delay:       delay / 2,
		RandomDelay: delay,
	})
	if err != nil {
		return nil, fmt.Errorf("KijijiFetcherAdapter: failed to set limit rule: %w", err)
	}

	extensions.Referer(c) // Автоматически подставляет заголовок Referer, имитируя навигацию

	return &KijijiFetcherAdapter{
		collector: c,
		transport: transport,
		baseURL:   constants.KijijiBaseURL,
		userAgent: cfg.UserAgent,
	}, nil
}

// Website возвращает каноническое имя источника.
func (a *KijijiFetcherAdapter) Website() string { return constants.KijijiWebsiteName }

// BaseURL возвращает базовый URL поисковой выдачи.
func (a *KijijiFetcherAdapter) BaseURL() string { return a.baseURL }

// SupportedCities возвращает маппинг City -> сегмент пути Kijiji.
func (a *KijijiFetcherAdapter) SupportedCities() map[domain.City]string {
	return constants.KijijiCityPaths
}

// Close гасит keep-alive соединения HTTP-транспорта.
// Вызывается на каждом пути выхода из владеющего scope.
func (a *KijijiFetcherAdapter) Close() {
	a.transport.CloseIdleConnections()
}
