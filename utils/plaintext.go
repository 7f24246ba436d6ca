/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package utils

import (
	"errors"
	"io"
	"strings"

	nethtml "golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// PlainText returns the visible text of an HTML fragment with whitespace
// collapsed. Script and style contents are dropped.
func PlainText(fragment string) string {
	tokenizer := nethtml.NewTokenizer(strings.NewReader(fragment))

	var (
		b       strings.Builder
		skipped int
	)

	for {
		switch tokenizer.Next() {
		case nethtml.ErrorToken:
			if err := tokenizer.Err(); err != nil && !errors.Is(err, io.EOF) {
				logger.Warn("Stopped extracting text from malformed markup", "error", err)
			}

			return strings.Join(strings.Fields(b.String()), " ")
		case nethtml.StartTagToken:
			if isHiddenElement(tokenizer) {
				skipped++
			}
		case nethtml.EndTagToken:
			if isHiddenElement(tokenizer) && skipped > 0 {
				skipped--
			}
		case nethtml.TextToken:
			if skipped == 0 {
				b.WriteString(tokenizer.Token().Data)
				b.WriteByte(' ')
			}
		}
	}
}

func isHiddenElement(tokenizer *nethtml.Tokenizer) bool {
	name, _ := tokenizer.TagName()
	switch atom.Lookup(name) {
	case atom.Script, atom.Style:
		return true
	default:
		return false
	}
}
