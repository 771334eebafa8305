package publisher

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"pitchcraft/generator"
)

const digestLimit = 120

// Config controls where decks are published.
type Config struct {
	// OutDir receives one HTML and one JSON file per deck.
	OutDir string
	// WebhookURL, when set, is notified after each publish.
	WebhookURL string
}

// PublishParams describes the deck to publish. ID keeps file names apart
// when titles repeat; a random one is used when it is empty.
type PublishParams struct {
	ID     string
	Title  string
	Deck   generator.SlideDeck
	Digest string
}

// Result reports what was written.
type Result struct {
	HTMLPath string `json:"html_path"`
	JSONPath string `json:"json_path"`
	Digest   string `json:"digest"`
}

type webhookPayload struct {
	Title       string    `json:"title"`
	Digest      string    `json:"digest"`
	HTMLPath    string    `json:"html_path"`
	TotalSlides int       `json:"total_slides"`
	PublishedAt time.Time `json:"published_at"`
}

type Publisher struct {
	cfg    Config
	client *http.Client
	logger *zap.Logger
	now    func() time.Time
}

// New creates a Publisher and makes sure the output directory exists.
func New(cfg Config, client *http.Client, logger *zap.Logger) (*Publisher, error) {
	if strings.TrimSpace(cfg.OutDir) == "" {
		return nil, errors.New("publish directory is required")
	}
	if err := os.MkdirAll(cfg.OutDir, 0o755); err != nil {
		return nil, fmt.Errorf("create publish directory: %w", err)
	}
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Publisher{cfg: cfg, client: client, logger: logger.Named("publisher"), now: time.Now}, nil
}

// Publish renders the deck to HTML, writes it next to its JSON form and
// notifies the webhook if one is configured.
func (p *Publisher) Publish(ctx context.Context, params PublishParams) (Result, error) {
	if strings.TrimSpace(params.Title) == "" {
		return Result{}, errors.New("title is required")
	}
	if len(params.Deck.Slides) == 0 {
		return Result{}, errors.New("deck has no slides")
	}

	digest := params.Digest
	if digest == "" {
		digest = defaultDigest(params.Deck, digestLimit)
	}

	page, err := generator.RenderDeckHTML(params.Deck)
	if err != nil {
		return Result{}, err
	}
	p.logger.Debug("rendered deck", zap.String("title", params.Title), zap.Int("slides", len(params.Deck.Slides)))

	id := slug(params.ID)
	if params.ID == "" {
		id = uuid.NewString()
	}
	base := filepath.Join(p.cfg.OutDir, slug(params.Title)+"-"+id)
	res := Result{HTMLPath: base + ".html", JSONPath: base + ".json", Digest: digest}
	if err := os.WriteFile(res.HTMLPath, []byte(page), 0o644); err != nil {
		return Result{}, fmt.Errorf("write deck html: %w", err)
	}
	raw, err := json.MarshalIndent(params.Deck, "", "  ")
	if err != nil {
		return Result{}, err
	}
	if err := os.WriteFile(res.JSONPath, raw, 0o644); err != nil {
		return Result{}, fmt.Errorf("write deck json: %w", err)
	}
	p.logger.Info("deck published", zap.String("html", res.HTMLPath))

	if p.cfg.WebhookURL != "" {
		err := p.notify(ctx, webhookPayload{
			Title:       params.Title,
			Digest:      digest,
			HTMLPath:    res.HTMLPath,
			TotalSlides: params.Deck.TotalSlides,
			PublishedAt: p.now().UTC(),
		})
		if err != nil {
			return res, err
		}
	}
	return res, nil
}

func (p *Publisher) notify(ctx context.Context, payload webhookPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.cfg.WebhookURL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("notify webhook: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= http.StatusBadRequest {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("notify webhook: status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}
	return nil
}

// defaultDigest is the first limit runes of the opening slide, whitespace collapsed.
func defaultDigest(deck generator.SlideDeck, limit int) string {
	var text string
	for _, s := range deck.Slides {
		if strings.TrimSpace(s.Content) != "" {
			text = s.Content
			break
		}
	}
	joined := []rune(strings.Join(strings.Fields(text), " "))
	if len(joined) <= limit {
		return string(joined)
	}
	return string(joined[:limit])
}

func slug(title string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(strings.TrimSpace(title)) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	s := strings.TrimSuffix(b.String(), "-")
	if s == "" {
		return "deck"
	}
	return s
}
