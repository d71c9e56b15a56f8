// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"fmt"
	"io"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/paper-radar/pkg/types"
)

// CSLItem represents a bibliographic entry in CSL (Citation Style Language)
// format. The field names and structure follow the CSL-JSON/CSL-YAML schema
// so that output is consumable by Pandoc and reference managers.
type CSLItem struct {
	ID             string    `yaml:"id"`
	Type           string    `yaml:"type"`
	Title          string    `yaml:"title"`
	Author         []CSLName `yaml:"author,omitempty"`
	Abstract       string    `yaml:"abstract,omitempty"`
	Issued         *CSLDate  `yaml:"issued,omitempty"`
	ContainerTitle string    `yaml:"container-title,omitempty"`
	DOI            string    `yaml:"DOI,omitempty"`
	URL            string    `yaml:"URL,omitempty"`
	Keyword        string    `yaml:"keyword,omitempty"`
	Note           string    `yaml:"note,omitempty"`
}

// CSLName represents a person's name in CSL format.
type CSLName struct {
	Family  string `yaml:"family,omitempty"`
	Given   string `yaml:"given,omitempty"`
	Literal string `yaml:"literal,omitempty"`
}

// CSLDate represents a date in CSL format using date-parts.
type CSLDate struct {
	DateParts [][]int `yaml:"date-parts"`
}

// FormatCSL writes papers as a CSL-YAML list to w.
func FormatCSL(papers []types.Paper, w io.Writer) error {
	items := make([]CSLItem, len(papers))
	for i, p := range papers {
		items[i] = toCSLItem(p, i)
	}
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(items)
}

// toCSLItem converts a Paper to a CSLItem. Fallback literals are left out.
func toCSLItem(p types.Paper, i int) CSLItem {
	item := CSLItem{
		Type:           "article",
		Title:          p.Title,
		ContainerTitle: p.Source,
		Keyword:        strings.Join(p.Tags, ", "),
		Note:           p.ComputedSummary,
	}
	if p.Summary != types.NoAbstract {
		item.Abstract = p.Summary
	}
	if p.Link != types.NoLink {
		item.URL = p.Link
	}
	if doi := doiFromLink(p.Link); doi != "" {
		item.DOI = doi
	}

	for _, a := range p.Authors {
		if n := parseAuthorName(a); n != (CSLName{}) {
			item.Author = append(item.Author, n)
		}
	}

	if p.Year > 0 {
		item.Issued = &CSLDate{DateParts: [][]int{{p.Year}}}
	}

	item.ID = citationKey(item, i)
	return item
}

// doiFromLink extracts the DOI from a doi.org resolver URL.
func doiFromLink(link string) string {
	const marker = "doi.org/"
	idx := strings.Index(link, marker)
	if idx < 0 {
		return ""
	}
	doi := link[idx+len(marker):]
	if !strings.HasPrefix(doi, "10.") {
		return ""
	}
	return doi
}

// citationKey builds a family-name-plus-year key, suffixed with the list
// position so keys stay unique within one export.
func citationKey(item CSLItem, i int) string {
	name := "anon"
	if len(item.Author) > 0 {
		a := item.Author[0]
		name = a.Family
		if name == "" {
			name = a.Literal
		}
	}
	name = strings.ToLower(strings.Join(strings.Fields(name), ""))

	year := "nd"
	if item.Issued != nil {
		year = fmt.Sprintf("%d", item.Issued.DateParts[0][0])
	}
	return fmt.Sprintf("%s%s-%d", name, year, i+1)
}

// parseAuthorName splits a full name string into CSL family/given parts.
// "Family, Given" is split on the comma; otherwise it splits on the last
// space. Single-token names use the literal field.
func parseAuthorName(name string) CSLName {
	name = strings.TrimSpace(name)
	if name == "" {
		return CSLName{}
	}
	if family, given, ok := strings.Cut(name, ","); ok {
		return CSLName{Family: strings.TrimSpace(family), Given: strings.TrimSpace(given)}
	}
	idx := strings.LastIndex(name, " ")
	if idx < 0 {
		return CSLName{Literal: name}
	}
	return CSLName{
		Given:  name[:idx],
		Family: name[idx+1:],
	}
}
