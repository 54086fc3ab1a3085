// Package view はカタログのHTMLレンダリングを提供する。
// データ→ノードツリー→直列化の純粋関数として実装し、エスケープを一様に適用する。
// ページリンクウィンドウやサマリー範囲の計算はレンダラーから独立してテストできる。
package view

// maxPageLinks はページネーションに表示するページリンクの最大数。
const maxPageLinks = 5

// PageWindow は表示するページ番号のウィンドウ（最大5件）を返す。
//
//   - totalPages <= 5 の場合: 1..totalPages
//   - currentPage <= 3 の場合: 1..5
//   - currentPage >= totalPages-2 の場合: totalPages-4..totalPages
//   - それ以外: currentPage-2..currentPage+2
//
// totalPagesが0以下の場合はnilを返す。
func PageWindow(currentPage, totalPages int) []int {
	if totalPages <= 0 {
		return nil
	}

	var start, end int
	switch {
	case totalPages <= maxPageLinks:
		start, end = 1, totalPages
	case currentPage <= 3:
		start, end = 1, maxPageLinks
	case currentPage >= totalPages-2:
		start, end = totalPages-maxPageLinks+1, totalPages
	default:
		start, end = currentPage-2, currentPage+2
	}

	pages := make([]int, 0, end-start+1)
	for p := start; p <= end; p++ {
		pages = append(pages, p)
	}
	return pages
}

// SummaryRange はサマリー行に表示する1始まりの閉区間[start, end]を返す。
// start = (currentPage-1)*pageSize + 1、end = min(currentPage*pageSize, total)。
func SummaryRange(currentPage, pageSize, total int) (start, end int) {
	start = (currentPage-1)*pageSize + 1
	end = currentPage * pageSize
	if end > total {
		end = total
	}
	return start, end
}
