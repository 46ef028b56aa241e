// Package docs bundles the long-form Markdown documentation into the
// slrename binary.
package docs

import "embed"

// FS contains the docs topics, one Markdown file per topic.
//
//go:embed *.md
var FS embed.FS
