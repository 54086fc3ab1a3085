package view

import (
	"fmt"
	"net/url"
	"strconv"

	"golang.org/x/net/html"

	"github.com/hitoshi/komeprice/internal/model"
)

// siteTitle はドキュメントのタイトルおよび見出しに使用する。
const siteTitle = "お米価格比較"

// styleSheet は自己完結ドキュメントに埋め込む最小限のスタイル。
const styleSheet = `body{font-family:sans-serif;margin:0;color:#333}
header{background:#2e7d32;padding:12px 16px}
header a{color:#fff;text-decoration:none;font-size:1.2rem;font-weight:bold}
main{max-width:960px;margin:0 auto;padding:16px}
nav.sort a,nav.sort span{margin-right:12px}
nav.sort span.active{font-weight:bold}
ul.products{list-style:none;display:grid;grid-template-columns:repeat(auto-fill,minmax(200px,1fr));gap:16px;padding:0}
li.product{border:1px solid #ddd;border-radius:4px;padding:8px}
li.product a{color:inherit;text-decoration:none}
.thumb{height:140px;display:flex;align-items:center;justify-content:center;background:#fafafa}
.thumb img{max-width:100%;max-height:100%}
.price{font-weight:bold;color:#b71c1c}
.site{color:#777;font-size:0.85rem}
nav.pagination{margin:24px 0;text-align:center}
nav.pagination a,nav.pagination span{margin:0 4px}
nav.pagination span.current{font-weight:bold}
nav.pagination span.disabled{color:#aaa}
.empty,.error{text-align:center;padding:48px 0;color:#666}
footer{text-align:center;color:#999;font-size:0.8rem;padding:16px}`

// sortOptions はソートコントロールに表示する選択肢。表示順も固定。
var sortOptions = []struct {
	Key   model.SortKey
	Label string
}{
	{model.SortPriceAsc, "価格の安い順"},
	{model.SortPriceDesc, "価格の高い順"},
	{model.SortUpdatedDesc, "新着順"},
}

// pageURL はソートとページ番号を引き継ぐカタログ内リンクを生成する。
func pageURL(sort model.SortKey, page int) string {
	v := url.Values{}
	v.Set("sort", string(sort))
	v.Set("page", strconv.Itoa(page))
	return "/?" + v.Encode()
}

// SummaryText はサマリー行の表示テキストを返す。
// 例: 全45件・20件表示・3ページ目 → "41-45 / 全45件"
func SummaryText(currentPage, pageSize, total int) string {
	start, end := SummaryRange(currentPage, pageSize, total)
	return fmt.Sprintf("%d-%d / 全%d件", start, end, total)
}

// RenderCatalog はPageViewを自己完結したカタログドキュメントに直列化する。
// 副作用を持たない純粋関数であり、商品由来のテキスト（name、site_name）は
// ノードツリーの直列化時に一様にエスケープされる。URLは収集側で検証済みの
// 前提でそのまま属性値として出力する。
func RenderCatalog(view *model.PageView) []byte {
	main := elem("main", nil, sortNav(view.Sort))

	if len(view.Items) == 0 {
		// 空状態: プレースホルダーのみでページネーションは表示しない
		main.AppendChild(elem("div", attrs("class", "empty"),
			elem("p", nil, text("表示できる商品がありません。")),
		))
	} else {
		main.AppendChild(elem("p", attrs("class", "summary"),
			text(SummaryText(view.CurrentPage, view.PageSize, view.TotalProducts)),
		))

		grid := elem("ul", attrs("class", "products"))
		for i := range view.Items {
			grid.AppendChild(productCard(&view.Items[i]))
		}
		main.AppendChild(grid)

		main.AppendChild(pagination(view))
	}

	return serialize(page(main))
}

// RenderError はストア障害時の汎用エラードキュメントを直列化する。
// 部分的なカタログは一切含めない。
func RenderError(message string) []byte {
	main := elem("main", nil,
		elem("div", attrs("class", "error"),
			elem("h2", nil, text("エラーが発生しました")),
			elem("p", nil, text(message)),
			elem("p", nil, elem("a", attrs("href", "/"), text("トップへ戻る"))),
		),
	)
	return serialize(page(main))
}

// page は共通のhead/header/footerでmainを包んだドキュメントを返す。
func page(main *html.Node) *html.Node {
	head := elem("head", nil,
		elem("meta", attrs("charset", "utf-8")),
		elem("meta", attrs("name", "viewport", "content", "width=device-width, initial-scale=1")),
		elem("title", nil, text(siteTitle)),
		elem("style", nil, text(styleSheet)),
	)

	body := elem("body", nil,
		elem("header", nil, elem("a", attrs("href", "/"), text(siteTitle))),
		main,
		elem("footer", nil, text("価格は収集時点のものです。最新の価格は各販売サイトでご確認ください。")),
	)

	return document("ja", head, body)
}

// sortNav はソートコントロールを構築する。
// 現在のソートキーはリンクにせず強調表示し、他はページ1へのリンクにする。
func sortNav(current model.SortKey) *html.Node {
	nav := elem("nav", attrs("class", "sort"))
	for _, opt := range sortOptions {
		if opt.Key == current {
			nav.AppendChild(elem("span", attrs("class", "active"), text(opt.Label)))
		} else {
			nav.AppendChild(elem("a", attrs("href", pageURL(opt.Key, 1)), text(opt.Label)))
		}
	}
	return nav
}

// productCard は商品1件分のカードを構築する。
// リンク先はaffiliate_url優先でproduct_urlへフォールバックする。
// 画像が無い場合はプレースホルダーを表示し、エラーにはしない。
func productCard(p *model.Product) *html.Node {
	var thumb *html.Node
	if p.ImageURL != "" {
		thumb = elem("div", attrs("class", "thumb"),
			elem("img", attrs("src", p.ImageURL, "alt", p.Name, "loading", "lazy")),
		)
	} else {
		thumb = elem("div", attrs("class", "thumb no-image"), text("No Image"))
	}

	link := elem("a", attrs("href", p.LinkTarget(), "target", "_blank", "rel", "sponsored noopener"),
		thumb,
		elem("h2", attrs("class", "name"), text(p.Name)),
		elem("p", attrs("class", "price"), text(FormatPrice(p.Price))),
	)

	if p.SiteName != "" {
		link.AppendChild(elem("p", attrs("class", "site"), text(p.SiteName)))
	}

	return elem("li", attrs("class", "product"), link)
}

// pagination はページリンクウィンドウと前後リンクを構築する。
// 現在ページはリンクにしない。先頭/末尾では前へ/次へを無効表示にする。
func pagination(view *model.PageView) *html.Node {
	nav := elem("nav", attrs("class", "pagination"))

	if view.CurrentPage > 1 {
		nav.AppendChild(elem("a", attrs("href", pageURL(view.Sort, view.CurrentPage-1)), text("前へ")))
	} else {
		nav.AppendChild(elem("span", attrs("class", "disabled"), text("前へ")))
	}

	for _, p := range PageWindow(view.CurrentPage, view.TotalPages) {
		label := strconv.Itoa(p)
		if p == view.CurrentPage {
			nav.AppendChild(elem("span", attrs("class", "current"), text(label)))
		} else {
			nav.AppendChild(elem("a", attrs("href", pageURL(view.Sort, p)), text(label)))
		}
	}

	if view.CurrentPage < view.TotalPages {
		nav.AppendChild(elem("a", attrs("href", pageURL(view.Sort, view.CurrentPage+1)), text("次へ")))
	} else {
		nav.AppendChild(elem("span", attrs("class", "disabled"), text("次へ")))
	}

	return nav
}
