package dailypost

import (
	"bytes"
	"encoding/json"
	"strings"
)

// GeneratedContent is the article produced by the content generator for one run.
// TableData and ChartData are kept raw so a malformed optional block never
// invalidates the rest of the article; use Table and Chart to decode them.
type GeneratedContent struct {
	Title            string          `json:"title"`
	Lead             string          `json:"lead"`
	Body             string          `json:"body"`
	Category         string          `json:"category"`
	ImageDescription string          `json:"image_description,omitempty"`
	TableData        json.RawMessage `json:"table_data,omitempty"`
	ChartData        json.RawMessage `json:"chart_data,omitempty"`
}

// UnmarshalJSON decodes an article leniently. Text fields holding a number or
// boolean keep its literal text; any other non-string value is treated as
// absent, so only malformed JSON rejects the article.
func (c *GeneratedContent) UnmarshalJSON(data []byte) error {
	var raw struct {
		Title            json.RawMessage `json:"title"`
		Lead             json.RawMessage `json:"lead"`
		Body             json.RawMessage `json:"body"`
		Category         json.RawMessage `json:"category"`
		ImageDescription json.RawMessage `json:"image_description"`
		TableData        json.RawMessage `json:"table_data"`
		ChartData        json.RawMessage `json:"chart_data"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*c = GeneratedContent{
		Title:            lenientText(raw.Title),
		Lead:             lenientText(raw.Lead),
		Body:             lenientText(raw.Body),
		Category:         lenientText(raw.Category),
		ImageDescription: lenientText(raw.ImageDescription),
		TableData:        present(raw.TableData),
		ChartData:        present(raw.ChartData),
	}
	return nil
}

func lenientText(v json.RawMessage) string {
	v = bytes.TrimSpace(v)
	if len(v) == 0 {
		return ""
	}
	switch v[0] {
	case '"':
		var s string
		if json.Unmarshal(v, &s) == nil {
			return s
		}
		return ""
	case '{', '[', 'n':
		return ""
	default:
		return strings.TrimSpace(string(v))
	}
}

// present drops a JSON null so an explicit null block reads as absent.
func present(v json.RawMessage) json.RawMessage {
	if bytes.Equal(bytes.TrimSpace(v), []byte("null")) {
		return nil
	}
	return v
}

// TableData is the tabular block an article may carry.
type TableData struct {
	Headers []string `json:"headers"`
	Rows    [][]any  `json:"rows"`
}

// ChartData is the bar chart block an article may carry.
type ChartData struct {
	Title  string    `json:"title,omitempty"`
	XLabel string    `json:"x_label,omitempty"`
	YLabel string    `json:"y_label,omitempty"`
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
}

// Table decodes the table block. ok is false when the block is absent, does not
// decode, or lacks the headers or rows key.
func (c GeneratedContent) Table() (TableData, bool) {
	var t TableData
	if len(c.TableData) == 0 || json.Unmarshal(c.TableData, &t) != nil {
		return TableData{}, false
	}
	if len(t.Headers) == 0 || t.Rows == nil {
		return TableData{}, false
	}
	return t, true
}

// Chart decodes the chart block. ok is false when the block is absent, does not
// decode, or lacks the labels or values key.
func (c GeneratedContent) Chart() (ChartData, bool) {
	var d ChartData
	if len(c.ChartData) == 0 || json.Unmarshal(c.ChartData, &d) != nil {
		return ChartData{}, false
	}
	if d.Labels == nil || d.Values == nil {
		return ChartData{}, false
	}
	return d, true
}

// PostRecord is one entry of the post index.
type PostRecord struct {
	Title     string `json:"title"`
	Date      string `json:"date"`
	Timestamp string `json:"timestamp"`
	Category  string `json:"category"`
	Excerpt   string `json:"excerpt"`
	Filename  string `json:"filename"`
	Image     string `json:"image"`
}

// PostIndex is the JSON registry read by the site front-end.
type PostIndex struct {
	Posts       []PostRecord `json:"posts"`
	LastUpdated string       `json:"last_updated"`
}
