package notion

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sort"
	"time"

	"github.com/jomei/notionapi"

	"github.com/couchcryptid/pro-finder-service/internal/domain"
	"github.com/couchcryptid/pro-finder-service/internal/observability"
)

// Database property names.
const (
	propName         = "Name"
	propCompleteness = "Checker"
	propLastContact  = "Dernier contact"
	propContact      = "Contact"
	propIndustry     = "Industrie"
	propAddress      = "Adresse"
	propPhone        = "Numéro de téléphone"
	propWebsite      = "Site web"
	propSource       = "Source"
)

// Client implements prospect.Workspace on a Notion database.
type Client struct {
	api        *notionapi.Client
	databaseID notionapi.DatabaseID
	logger     *slog.Logger
	metrics    *observability.Metrics
}

// NewClient creates a client for the database databaseID using an internal
// integration token.
func NewClient(token, databaseID string, timeout time.Duration, logger *slog.Logger, metrics *observability.Metrics) *Client {
	return newClient(token, databaseID, &http.Client{Timeout: timeout}, logger, metrics)
}

func newClient(token, databaseID string, httpClient *http.Client, logger *slog.Logger, metrics *observability.Metrics) *Client {
	return &Client{
		api:        notionapi.NewClient(notionapi.Token(token), notionapi.WithHTTPClient(httpClient)),
		databaseID: notionapi.DatabaseID(databaseID),
		logger:     logger,
		metrics:    metrics,
	}
}

// FindPageByTitle returns the first page whose Name equals title exactly.
func (c *Client) FindPageByTitle(ctx context.Context, title string) (domain.PageRef, bool, error) {
	resp, err := c.api.Database.Query(ctx, c.databaseID, &notionapi.DatabaseQueryRequest{
		Filter: notionapi.PropertyFilter{
			Property: propName,
			Title:    &notionapi.TextFilterCondition{Equals: title},
		},
		PageSize: 1,
	})
	if err != nil {
		c.observe("query", err)
		return domain.PageRef{}, false, fmt.Errorf("query database by title: %w", err)
	}
	c.observe("query", nil)

	if len(resp.Results) == 0 {
		return domain.PageRef{}, false, nil
	}
	p := resp.Results[0]
	return domain.PageRef{ID: string(p.ID), URL: p.URL}, true, nil
}

// CreatePage adds a prospect page to the database.
func (c *Client) CreatePage(ctx context.Context, page domain.WorkspacePage) (domain.PageRef, error) {
	emoji := notionapi.Emoji(page.Glyph)
	req := &notionapi.PageCreateRequest{
		Parent: notionapi.Parent{
			Type:       notionapi.ParentTypeDatabaseID,
			DatabaseID: c.databaseID,
		},
		Properties: pageProperties(page),
		Icon: &notionapi.Icon{
			Type:  notionapi.FileType("emoji"),
			Emoji: &emoji,
		},
	}

	created, err := c.api.Page.Create(ctx, req)
	if err != nil {
		c.observe("create", err)
		return domain.PageRef{}, fmt.Errorf("create page %q: %w", page.Title, err)
	}
	c.observe("create", nil)

	c.logger.Info("workspace page created", "title", page.Title, "page_id", created.ID)
	return domain.PageRef{ID: string(created.ID), URL: created.URL}, nil
}

// DescribeDatabase retrieves the database title, id and property names.
func (c *Client) DescribeDatabase(ctx context.Context) (domain.DatabaseInfo, error) {
	db, err := c.api.Database.Get(ctx, c.databaseID)
	if err != nil {
		c.observe("retrieve", err)
		return domain.DatabaseInfo{}, fmt.Errorf("retrieve database: %w", err)
	}
	c.observe("retrieve", nil)

	info := domain.DatabaseInfo{
		ID:         string(db.ID),
		Properties: make([]string, 0, len(db.Properties)),
	}
	if len(db.Title) > 0 {
		info.Title = richTextContent(db.Title[0])
	}
	for name := range db.Properties {
		info.Properties = append(info.Properties, name)
	}
	sort.Strings(info.Properties)
	return info, nil
}

// pageProperties maps a page onto the database schema. Empty phone and
// website are omitted since Notion rejects empty values for those types.
func pageProperties(page domain.WorkspacePage) notionapi.Properties {
	date := notionapi.Date(page.LastContact)
	props := notionapi.Properties{
		propName: notionapi.TitleProperty{
			Title: []notionapi.RichText{textValue(page.Title)},
		},
		propCompleteness: richTextProperty(page.Completeness),
		propLastContact: notionapi.DateProperty{
			Date: &notionapi.DateObject{Start: &date},
		},
		propContact:  richTextProperty(page.ContactStatus),
		propIndustry: richTextProperty(page.Category),
		propAddress:  richTextProperty(page.Address),
		propSource: notionapi.SelectProperty{
			Select: notionapi.Option{Name: page.Source},
		},
	}
	if page.Phone != "" {
		props[propPhone] = notionapi.PhoneNumberProperty{PhoneNumber: page.Phone}
	}
	if page.Website != "" {
		props[propWebsite] = notionapi.URLProperty{URL: page.Website}
	}
	return props
}

func richTextProperty(s string) notionapi.RichTextProperty {
	return notionapi.RichTextProperty{RichText: []notionapi.RichText{textValue(s)}}
}

func textValue(s string) notionapi.RichText {
	return notionapi.RichText{
		Type: notionapi.ObjectTypeText,
		Text: &notionapi.Text{Content: s},
	}
}

func richTextContent(rt notionapi.RichText) string {
	if rt.Text != nil && rt.Text.Content != "" {
		return rt.Text.Content
	}
	return rt.PlainText
}

func (c *Client) observe(method string, err error) {
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	c.metrics.WorkspaceRequests.WithLabelValues(method, outcome).Inc()
}
