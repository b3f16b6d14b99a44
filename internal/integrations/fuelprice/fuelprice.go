package fuelprice

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/Dan9191/solar-simulator/internal/config"
	"github.com/beevik/etree"
	"github.com/sirupsen/logrus"
)

// Client reads the diesel price from an XML price feed
type Client struct {
	url    string
	xpath  string
	client *http.Client
	log    *logrus.Logger
}

// NewClient initializes a new fuel price client
func NewClient(cfg *config.Config, log *logrus.Logger) *Client {
	return &Client{
		url:   cfg.FuelPriceURL,
		xpath: cfg.FuelPriceXPath,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		log: log,
	}
}

// sendRequest fetches the raw feed document
func (c *Client) sendRequest(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/xml, text/xml")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	c.log.Debugf("Fuel price XML response: %s", string(body))

	return body, nil
}

// parseXMLResponse extracts the first price matching the configured path
func (c *Client) parseXMLResponse(rawBody []byte) (float64, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(rawBody); err != nil {
		return 0, fmt.Errorf("failed to parse XML: %w", err)
	}

	el := doc.FindElement(c.xpath)
	if el == nil {
		return 0, fmt.Errorf("no diesel price found at %s", c.xpath)
	}

	// feeds in es-CO use a decimal comma
	text := strings.ReplaceAll(strings.TrimSpace(el.Text()), ",", ".")
	price, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse price %q: %w", el.Text(), err)
	}
	if !(price > 0) {
		return 0, fmt.Errorf("diesel price must be positive, got %v", price)
	}

	return price, nil
}

// GetDieselPrice retrieves the current diesel price per liter
func (c *Client) GetDieselPrice(ctx context.Context) (float64, error) {
	body, err := c.sendRequest(ctx)
	if err != nil {
		return 0, err
	}

	price, err := c.parseXMLResponse(body)
	if err != nil {
		return 0, err
	}

	c.log.Infof("Retrieved diesel price: %.2f per liter", price)
	return price, nil
}
