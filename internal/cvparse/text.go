package cvparse

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
)

// ErrDocumentUnreadable reports that the supplied bytes cannot be parsed as a
// supported document format. It is propagated to the caller, never retried.
var ErrDocumentUnreadable = errors.New("document unreadable")

// ExtractText returns best-effort plain text from a CV document. HTML exports
// are stripped of markup; anything else is accepted as plain text as long as
// it is valid UTF-8 without NUL bytes (binary formats such as PDF must be
// converted by the caller first).
func ExtractText(document []byte) (string, error) {
	if len(bytes.TrimSpace(document)) == 0 {
		return "", fmt.Errorf("%w: empty document", ErrDocumentUnreadable)
	}

	if looksLikeHTML(document) {
		return extractHTMLText(document)
	}

	if !utf8.Valid(document) || bytes.ContainsRune(document, 0) {
		return "", fmt.Errorf("%w: not plain text or html", ErrDocumentUnreadable)
	}

	return string(document), nil
}

func looksLikeHTML(document []byte) bool {
	head := strings.ToLower(string(bytes.TrimSpace(document)))
	return strings.HasPrefix(head, "<!doctype html") ||
		strings.HasPrefix(head, "<html") ||
		strings.Contains(head, "<body")
}

func extractHTMLText(document []byte) (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(document))
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrDocumentUnreadable, err)
	}

	doc.Find("script, style").Remove()

	var sb strings.Builder
	doc.Find("body").Each(func(_ int, sel *goquery.Selection) {
		sb.WriteString(sel.Text())
		sb.WriteString("\n")
	})

	text := sb.String()
	if strings.TrimSpace(text) == "" {
		// Fragment without a body element; take the whole tree.
		text = doc.Text()
	}

	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%w: html document has no text", ErrDocumentUnreadable)
	}

	return text, nil
}
