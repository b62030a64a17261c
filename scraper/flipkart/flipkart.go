package flipkart

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/chromedp/chromedp"

	"smartpick/config"
	"smartpick/models"
	"smartpick/utils"
)

const (
	searchURL = "https://www.flipkart.com/search?q=smartphone&marketplace=FLIPKART"
	source    = "flipkart"
)

// Scraper collects raw phone records from Flipkart search result pages and
// enriches them from product detail pages.
type Scraper struct {
	cfg     *config.Config
	logger  *utils.Logger
	pool    *utils.WorkerPool
	visited *utils.SeenSet
	retry   *utils.RetryConfig

	mu     sync.Mutex
	phones []*models.RawPhone
}

// New creates a ready-to-use Flipkart Scraper.
func New(cfg *config.Config, logger *utils.Logger) *Scraper {
	return &Scraper{
		cfg:     cfg,
		logger:  logger,
		pool:    utils.NewWorkerPool(cfg.MaxConcurrency, cfg.RateLimitMs),
		visited: utils.NewSeenSet(),
		retry: &utils.RetryConfig{
			MaxAttempts: cfg.MaxRetries,
			BaseDelay:   2 * time.Second,
			Logger:      logger,
		},
		phones: make([]*models.RawPhone, 0),
	}
}

// Scrape drives pagination over the search results and detail-page
// enrichment for every discovered product.
func (s *Scraper) Scrape() ([]*models.RawPhone, error) {
	s.logger.Info("[flipkart] Starting scrape — target: %d pages, %d listings/page",
		s.cfg.PagesToScrape, s.cfg.ListingsPerPage)

	chromeBin := findChromeBinary(s.cfg.ChromeBin)
	s.logger.Info("[flipkart] Using browser binary: %s", chromeBin)

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.UserAgent("Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 "+
			"(KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"),
	)
	if chromeBin != "" {
		opts = append(opts, chromedp.ExecPath(chromeBin))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(context.Background(), opts...)
	defer cancelAlloc()

	silentCtx, cancelSilent := chromedp.NewContext(allocCtx, chromedp.WithLogf(func(string, ...interface{}) {}))
	defer cancelSilent()
	allocCtx = silentCtx

	for page := 1; page <= s.cfg.PagesToScrape; page++ {
		pageURL := fmt.Sprintf("%s&page=%d", searchURL, page)
		s.logger.Info("[flipkart] Scraping page %d — URL: %s", page, pageURL)

		pagePhones, err := s.scrapePage(allocCtx, pageURL, page)
		if err != nil {
			s.logger.Error("[flipkart] Page %d failed: %v", page, err)
			break
		}
		if len(pagePhones) == 0 {
			s.logger.Warn("[flipkart] Page %d returned 0 listings — stopping", page)
			break
		}

		s.enrichPhones(allocCtx, pagePhones)

		s.mu.Lock()
		s.phones = append(s.phones, pagePhones...)
		s.mu.Unlock()

		s.logger.Info("[flipkart] Page %d done — collected %d phones so far", page, len(s.phones))
		time.Sleep(time.Duration(s.cfg.RateLimitMs) * time.Millisecond)
	}

	s.logger.Info("[flipkart] Scrape complete — total raw phones: %d", len(s.phones))
	return s.phones, nil
}

// scrapePage loads one search results page and extracts product cards.
func (s *Scraper) scrapePage(allocCtx context.Context, pageURL string, pageNum int) ([]*models.RawPhone, error) {
	var phones []*models.RawPhone

	err := s.retry.Do(fmt.Sprintf("scrape-page-%d", pageNum), func() error {
		ctx, cancel := chromedp.NewContext(allocCtx)
		defer cancel()

		ctx, cancelTimeout := context.WithTimeout(ctx, 90*time.Second)
		defer cancelTimeout()

		type cardData struct {
			Title string `json:"title"`
			Price string `json:"price"`
			Image string `json:"image"`
			URL   string `json:"url"`
		}

		var cards []cardData

		err := chromedp.Run(ctx,
			chromedp.Navigate(pageURL),
			chromedp.Sleep(5*time.Second),

			chromedp.Evaluate(`window.scrollTo(0, document.body.scrollHeight)`, nil),
			chromedp.Sleep(2*time.Second),

			chromedp.Evaluate(`
				(function() {
					var results = [];
					var limit = `+fmt.Sprintf("%d", s.cfg.ListingsPerPage)+`;
					var seen = {};

					var cards = document.querySelectorAll('div[data-id]');
					for (var i = 0; i < cards.length && results.length < limit; i++) {
						var card = cards[i];

						var linkEl = card.querySelector('a[href*="/p/"]');
						if (!linkEl || !linkEl.href || seen[linkEl.href]) continue;
						seen[linkEl.href] = true;

						var titleEl = card.querySelector('div[class*="KzDlHZ"]') ||
						              card.querySelector('a[title]') ||
						              linkEl;
						var title = titleEl.getAttribute('title') || titleEl.innerText || '';

						var price = '';
						var divs = card.querySelectorAll('div');
						for (var d = 0; d < divs.length; d++) {
							var m = divs[d].innerText.match(/^₹[\d,]+$/);
							if (m) { price = m[0]; break; }
						}

						var imgEl = card.querySelector('img');

						results.push({
							title: title.trim(),
							price: price,
							image: imgEl ? imgEl.src : '',
							url:   linkEl.href
						});
					}

					return results;
				})()
			`, &cards),
		)
		if err != nil {
			return fmt.Errorf("chromedp page scrape: %w", err)
		}

		s.logger.Debug("[flipkart] Page %d — found %d cards", pageNum, len(cards))

		for _, c := range cards {
			if c.URL == "" || !s.visited.Add(c.URL) {
				continue
			}

			brand, model := splitTitle(c.Title)
			phones = append(phones, &models.RawPhone{
				Brand:      brand,
				Model:      model,
				RawPrice:   c.Price,
				ImageURL:   c.Image,
				ProductURL: c.URL,
				Source:     source,
				ScrapedAt:  time.Now(),
			})
		}

		return nil
	})

	return phones, err
}

// enrichPhones visits product detail pages to pick up spec strings the
// search cards do not carry.
func (s *Scraper) enrichPhones(allocCtx context.Context, phones []*models.RawPhone) {
	for _, phone := range phones {
		p := phone
		if p.ProductURL == "" {
			continue
		}

		s.pool.Submit(func() {
			specs, err := s.scrapeDetailPage(allocCtx, p.ProductURL)
			if err != nil {
				s.logger.Warn("[flipkart] Detail page failed for %s %s: %v", p.Brand, p.Model, err)
				return
			}

			p.MemoryStorage = specs["memory"]
			p.Display = specs["display"]
			p.Camera = specs["camera"]
			p.FrontCamera = specs["front_camera"]
			p.Processor = specs["processor"]
			p.Battery = specs["battery"]

			s.logger.Debug("[flipkart] Enriched: %s %s", p.Brand, p.Model)
		})
	}
	s.pool.Wait()
}

// scrapeDetailPage extracts the highlight spec list from a product page.
func (s *Scraper) scrapeDetailPage(allocCtx context.Context, url string) (map[string]string, error) {
	specs := map[string]string{}

	err := s.retry.Do("detail-page", func() error {
		ctx, cancel := chromedp.NewContext(allocCtx)
		defer cancel()

		ctx, cancelTimeout := context.WithTimeout(ctx, 60*time.Second)
		defer cancelTimeout()

		var extracted map[string]string

		err := chromedp.Run(ctx,
			chromedp.Navigate(url),
			chromedp.Sleep(4*time.Second),

			chromedp.Evaluate(`
				(function() {
					var result = {memory: '', display: '', camera: '', front_camera: '', processor: '', battery: ''};

					var items = document.querySelectorAll('li[class*="_21Ahn-"], ul li');
					for (var i = 0; i < items.length; i++) {
						var text = (items[i].innerText || '').trim();
						if (!text || text.length > 120) continue;
						var lower = text.toLowerCase();

						if (!result.memory && /ram/.test(lower) && /rom|storage/.test(lower)) result.memory = text;
						else if (!result.display && /display/.test(lower)) result.display = text;
						else if (!result.front_camera && /front camera/.test(lower)) result.front_camera = text;
						else if (!result.camera && /camera/.test(lower)) result.camera = text;
						else if (!result.processor && /processor|chipset|snapdragon|dimensity|bionic/.test(lower)) result.processor = text;
						else if (!result.battery && /mah|battery/.test(lower)) result.battery = text;
					}

					return result;
				})()
			`, &extracted),
		)
		if err != nil {
			return fmt.Errorf("chromedp detail extract: %w", err)
		}

		specs = extracted
		return nil
	})

	return specs, err
}

// splitTitle separates "Samsung Galaxy S24 (Onyx Black, 256 GB)" into a
// brand and a model string.
func splitTitle(title string) (brand, model string) {
	title = strings.TrimSpace(title)
	if idx := strings.Index(title, "("); idx > 0 {
		title = strings.TrimSpace(title[:idx])
	}

	parts := strings.SplitN(title, " ", 2)
	if len(parts) == 0 || parts[0] == "" {
		return "", ""
	}
	if len(parts) == 1 {
		return parts[0], parts[0]
	}
	return parts[0], parts[1]
}

// findChromeBinary locates a Chrome/Chromium binary.
func findChromeBinary(configured string) string {
	if configured != "" {
		return configured
	}

	names := []string{"google-chrome-stable", "google-chrome", "chromium", "chromium-browser"}
	for _, name := range names {
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}

	paths := []string{
		"/usr/bin/google-chrome-stable",
		"/usr/bin/google-chrome",
		"/usr/bin/chromium-browser",
		"/usr/bin/chromium",
		"/snap/bin/chromium",
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	return ""
}
