package lexer

import (
	"context"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/bethropolis/quill/internal/buffer"
	"github.com/bethropolis/quill/internal/logger"
)

// TreeSitterScanner emits the leaves of a tree-sitter concrete syntax tree.
type TreeSitterScanner struct {
	parser *sitter.Parser
}

// NewTreeSitter creates a scanner parsing with lang.
func NewTreeSitter(lang *sitter.Language) *TreeSitterScanner {
	parser := sitter.NewParser()
	parser.SetLanguage(lang)
	return &TreeSitterScanner{parser: parser}
}

// atomicNodes are emitted whole instead of descending into their children.
var atomicNodes = map[string]Kind{
	"comment": Comment,
	"string":  String,
	"integer": Number,
	"float":   Number,
}

func (s *TreeSitterScanner) Scan(text string) []Token {
	src := []byte(text)
	tree, err := s.parser.ParseCtx(context.Background(), nil, src)
	if err != nil {
		logger.Warnf("lexer: tree-sitter parse failed: %v", err)
		return nil
	}
	defer tree.Close()

	w := leafWalker{src: src, index: buffer.NewIndex(text)}
	w.visit(tree.RootNode())
	return w.tokens
}

type leafWalker struct {
	src    []byte
	index  *buffer.Index
	tokens []Token
}

// visit walks n in document order. It returns false once the walk must stop.
func (w *leafWalker) visit(n *sitter.Node) bool {
	if n.IsMissing() {
		logger.DebugTagf("lexer", "tree-sitter: missing %s at byte %d, truncating", n.Type(), n.StartByte())
		return false
	}
	kind, atomic := atomicNodes[n.Type()]
	if !atomic && n.ChildCount() > 0 {
		for i := 0; i < int(n.ChildCount()); i++ {
			if !w.visit(n.Child(i)) {
				return false
			}
		}
		return true
	}
	if n.Type() == "ERROR" {
		logger.DebugTagf("lexer", "tree-sitter: unscannable input at byte %d, truncating", n.StartByte())
		return false
	}
	if n.StartByte() == n.EndByte() {
		return true
	}

	content := n.Content(w.src)
	if strings.TrimSpace(content) == "" || n.Type() == "line_continuation" {
		return true
	}
	if !atomic {
		kind = Operator
		if isIdentifier(content) {
			kind = Identifier
		}
	}
	w.tokens = append(w.tokens, Token{
		Kind:  kind,
		Text:  content,
		Start: w.index.Position(int(n.StartByte())),
		End:   w.index.Position(int(n.EndByte())),
	})
	return true
}
