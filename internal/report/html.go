package report

import (
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/exportiq/exportiq/internal/intelligence"
)

const styleCSS = `
body{font-family:Georgia,serif;color:#1c1917;max-width:820px;margin:0 auto;padding:1rem 1.25rem;line-height:1.55;}
h1{font-size:1.5rem;border-bottom:2px solid #92400e;padding-bottom:0.35rem;}
h2{font-size:1.15rem;margin-top:1.6rem;}
table{width:100%;border-collapse:collapse;font-size:0.85rem;margin:0.75rem 0;}
th,td{border:1px solid #a8a29e;padding:0.35rem 0.5rem;text-align:left;vertical-align:top;}
thead th{background:#f1f5f9;font-weight:700;}
hr{border:0;border-top:1px solid #d6d3d1;margin:1.5rem 0;}
html,body,*{-webkit-print-color-adjust:exact !important;print-color-adjust:exact !important;}
@media print{@page{size:auto;margin:12mm;}}
`

// HTML converts a record's markdown report into a standalone HTML document.
func HTML(rec intelligence.Record) ([]byte, error) {
	var content strings.Builder
	md := goldmark.New(goldmark.WithExtensions(extension.GFM))
	if err := md.Convert([]byte(Markdown(rec)), &content); err != nil {
		return nil, fmt.Errorf("markdown convert: %w", err)
	}

	doc := "<!doctype html><html><head><meta charset='utf-8'><title>" +
		title(rec.Type) + "</title><style>" + styleCSS + "</style></head><body>" +
		content.String() + "</body></html>"
	return []byte(doc), nil
}
