package capecoral

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

var (
	ErrContainerNotFound = errors.New("news container not found")
	ErrNoContent         = errors.New("no content blocks in news container")
	ErrNoRecords         = errors.New("no news records found in content blocks")
)

// Config describes the markup of the news page.
type Config struct {
	// selector for the element holding all the news items, only the first match is used
	Container string `json:"container"`
	// selector for the content blocks inside the container
	Block string `json:"block"`
	// selector for the emphasis wrapper that holds a headline
	Emphasis string `json:"emphasis"`
	// exact style attribute of the span that marks a headline (and its description)
	MarkerStyle string `json:"marker_style"`
	// blocks starting with one of these are section headers and never part of a description
	SectionPrefixes []string `json:"section_prefixes"`
	// news_date used when a headline block has no date
	UnknownDate string `json:"unknown_date"`
}

func DefaultConfig() Config {
	return Config{
		Container:       "div.post",
		Block:           "p",
		Emphasis:        "strong",
		MarkerStyle:     "font-size: 18px;",
		SectionPrefixes: []string{"CAPE CORAL", "The city"},
		UnknownDate:     "N/A",
	}
}

type Record struct {
	ScrapeDate  string `json:"scrape_date"`
	NewsDate    string `json:"news_date"`
	Headline    string `json:"headline"`
	Description string `json:"description"`
}

const ScrapeDateLayout = "2006-01-02"

// matches dates like (3/10/25)
var dateRegex = regexp.MustCompile(`\((\d{1,2}/\d{1,2}/\d{2})\)`)

// matches link text and everything after it
var readMoreRegex = regexp.MustCompile(`(?s)(Read more|Click here).*$`)

func cleanDescription(description string) string {
	description = dateRegex.ReplaceAllString(description, "")
	description = readMoreRegex.ReplaceAllString(description, "")
	return strings.TrimSpace(description)
}

func cleanHeadline(headline string) string {
	return strings.TrimSpace(dateRegex.ReplaceAllString(headline, ""))
}

// accumulator is the record being assembled, it stays open until the
// next headline or the end of the document.
type accumulator struct {
	open        bool
	headline    string
	date        string
	description string
}

type extraction struct {
	acc     accumulator
	records []Record
}

type extractor struct {
	cfg        Config
	scrapeDate string
}

func (e extractor) initial() extraction {
	return extraction{acc: accumulator{date: e.cfg.UnknownDate}}
}

func (e extractor) markerSpans(sel *goquery.Selection) *goquery.Selection {
	return sel.Find("span").FilterFunction(func(_ int, span *goquery.Selection) bool {
		style, ok := span.Attr("style")
		return ok && style == e.cfg.MarkerStyle
	})
}

// headline returns the cleaned headline of a block and whether the block
// carries the headline marker. A marked block with an empty headline still
// ends the open record.
func (e extractor) headline(block *goquery.Selection) (string, bool) {
	emphasis := block.Find(e.cfg.Emphasis).First()
	if emphasis.Length() == 0 {
		return "", false
	}
	if e.markerSpans(emphasis).Length() == 0 {
		return "", false
	}
	return cleanHeadline(emphasis.Text()), true
}

func (e extractor) isSectionHeader(text string) bool {
	for _, prefix := range e.cfg.SectionPrefixes {
		if strings.HasPrefix(text, prefix) {
			return true
		}
	}
	return false
}

func (e extractor) close(acc accumulator) Record {
	return Record{
		ScrapeDate:  e.scrapeDate,
		NewsDate:    acc.date,
		Headline:    acc.headline,
		Description: cleanDescription(acc.description),
	}
}

// step folds a single content block into the extraction.
func (e extractor) step(state extraction, block *goquery.Selection) extraction {
	headline, marked := e.headline(block)

	if !marked {
		if !state.acc.open {
			return state
		}
		text := strings.TrimSpace(block.Text())
		if text == "" || e.isSectionHeader(text) {
			return state
		}
		state.acc.description += " " + text
		return state
	}

	if state.acc.open {
		state.records = append(state.records, e.close(state.acc))
	}
	if headline == "" {
		// nothing to attach continuation text to until the next headline
		state.acc = accumulator{date: e.cfg.UnknownDate}
		return state
	}

	date := e.cfg.UnknownDate
	match := dateRegex.FindStringSubmatch(block.Text())
	if match != nil {
		date = match[1]
	}

	// the first marker span is usually the headline's own styling, the
	// last one holds the description.
	description := ""
	spans := e.markerSpans(block)
	if spans.Length() > 0 {
		description = strings.TrimSpace(spans.Last().Text())
		description = strings.TrimSpace(strings.ReplaceAll(description, headline, ""))
	}

	state.acc = accumulator{
		open:        true,
		headline:    headline,
		date:        date,
		description: description,
	}
	return state
}

// flush closes the open record, if any.
func (e extractor) flush(state extraction) extraction {
	if state.acc.open {
		state.records = append(state.records, e.close(state.acc))
	}
	state.acc = accumulator{date: e.cfg.UnknownDate}
	return state
}

// ExtractNews turns the news page into records in document order.
func ExtractNews(cfg Config, document string, scrapeDate time.Time) ([]Record, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(document))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	return ExtractNewsFromDocument(cfg, doc, scrapeDate)
}

func ExtractNewsFromDocument(cfg Config, doc *goquery.Document, scrapeDate time.Time) ([]Record, error) {
	container := doc.Find(cfg.Container).First()
	if container.Length() == 0 {
		return nil, ErrContainerNotFound
	}
	blocks := container.Find(cfg.Block)
	if blocks.Length() == 0 {
		return nil, ErrNoContent
	}

	e := extractor{cfg: cfg, scrapeDate: scrapeDate.Format(ScrapeDateLayout)}
	state := e.initial()
	blocks.Each(func(_ int, block *goquery.Selection) {
		state = e.step(state, block)
	})
	state = e.flush(state)

	if len(state.records) == 0 {
		return nil, ErrNoRecords
	}
	return state.records, nil
}
