// Package doc is the micro-parser for /// documentation comments. The lexer
// hands it the coalesced comment text; it returns a structured comment the
// generators can reflow into each target's doc syntax.
package doc

import "strings"

// Comment is a parsed documentation comment: a summary paragraph followed by
// any number of detail blocks.
type Comment struct {
	Summary *Para
	Details []Block
}

// Block is a paragraph or a bullet list.
type Block interface {
	blockNode()
}

// Para is a paragraph of inline fragments.
type Para struct {
	Children []Inline
}

func (*Para) blockNode() {}

// List is a bullet list; each `* ` line becomes one item.
type List struct {
	Items []*Para
}

func (*List) blockNode() {}

// Inline is plain text or a `code` span.
type Inline interface {
	inlineNode()
}

type Text struct {
	Text string
}

func (*Text) inlineNode() {}

type Code struct {
	Text string
}

func (*Code) inlineNode() {}

// Parse structures a raw comment. Blank lines separate blocks, lines
// starting with "* " form bullet lists, backticks delimit code spans.
func Parse(text string) *Comment {
	c := &Comment{}
	for _, chunk := range splitBlocks(text) {
		var block Block
		if strings.HasPrefix(chunk[0], "* ") {
			list := &List{}
			for _, line := range chunk {
				list.Items = append(list.Items, parsePara(strings.TrimPrefix(line, "* ")))
			}
			block = list
		} else {
			block = parsePara(strings.Join(chunk, " "))
		}
		if c.Summary == nil {
			if para, ok := block.(*Para); ok {
				c.Summary = para
				continue
			}
			c.Summary = &Para{}
		}
		c.Details = append(c.Details, block)
	}
	if c.Summary == nil {
		c.Summary = &Para{}
	}
	return c
}

// splitBlocks groups the comment lines into chunks separated by blank lines,
// keeping bullet lines apart from surrounding prose.
func splitBlocks(text string) [][]string {
	var blocks [][]string
	var current []string
	flush := func() {
		if len(current) > 0 {
			blocks = append(blocks, current)
			current = nil
		}
	}
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, " \t")
		switch {
		case line == "":
			flush()
		case strings.HasPrefix(line, "* "):
			if len(current) > 0 && !strings.HasPrefix(current[0], "* ") {
				flush()
			}
			current = append(current, line)
		default:
			if len(current) > 0 && strings.HasPrefix(current[0], "* ") {
				flush()
			}
			current = append(current, line)
		}
	}
	flush()
	return blocks
}

func parsePara(text string) *Para {
	para := &Para{}
	for {
		open := strings.IndexByte(text, '`')
		if open < 0 {
			break
		}
		close := strings.IndexByte(text[open+1:], '`')
		if close < 0 {
			break
		}
		if open > 0 {
			para.Children = append(para.Children, &Text{Text: text[:open]})
		}
		para.Children = append(para.Children, &Code{Text: text[open+1 : open+1+close]})
		text = text[open+close+2:]
	}
	if text != "" {
		para.Children = append(para.Children, &Text{Text: text})
	}
	return para
}
