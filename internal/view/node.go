package view

import (
	"bytes"

	"golang.org/x/net/html"
)

// elem は要素ノードを生成し、子ノードを順に追加する。
func elem(tag string, attrs []html.Attribute, children ...*html.Node) *html.Node {
	n := &html.Node{
		Type: html.ElementNode,
		Data: tag,
		Attr: attrs,
	}
	for _, c := range children {
		n.AppendChild(c)
	}
	return n
}

// text はテキストノードを生成する。直列化時にhtml.Renderがエスケープを適用する。
func text(s string) *html.Node {
	return &html.Node{
		Type: html.TextNode,
		Data: s,
	}
}

// attrs は属性リストを生成する。key, value, key, value, ... の順で渡す。
func attrs(kv ...string) []html.Attribute {
	list := make([]html.Attribute, 0, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		list = append(list, html.Attribute{Key: kv[i], Val: kv[i+1]})
	}
	return list
}

// document はDOCTYPE付きの完全なHTMLドキュメントノードを生成する。
func document(lang string, head, body *html.Node) *html.Node {
	doc := &html.Node{Type: html.DocumentNode}
	doc.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})
	doc.AppendChild(elem("html", attrs("lang", lang), head, body))
	return doc
}

// serialize はノードツリーをHTMLバイト列に直列化する。
// bytes.Bufferへの書き込みは失敗しないため、Renderのエラーはツリー構築バグを意味する。
func serialize(doc *html.Node) []byte {
	var buf bytes.Buffer
	if err := html.Render(&buf, doc); err != nil {
		// 構築済みツリーの直列化は失敗しない前提。念のため空ドキュメントを返す。
		return nil
	}
	return buf.Bytes()
}
