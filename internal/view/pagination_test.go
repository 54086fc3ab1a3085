package view

import (
	"reflect"
	"testing"
)

// TestPageWindow_BoundaryCases はページリンクウィンドウの境界ケースを検証する。
func TestPageWindow_BoundaryCases(t *testing.T) {
	tests := []struct {
		name            string
		current, total  int
		want            []int
	}{
		{"先頭ページ", 1, 12, []int{1, 2, 3, 4, 5}},
		{"3ページ目まで先頭固定", 3, 12, []int{1, 2, 3, 4, 5}},
		{"中間ページは前後2ページ", 7, 12, []int{5, 6, 7, 8, 9}},
		{"中間の下限", 4, 12, []int{2, 3, 4, 5, 6}},
		{"末尾3ページは末尾固定", 10, 12, []int{8, 9, 10, 11, 12}},
		{"最終ページ", 12, 12, []int{8, 9, 10, 11, 12}},
		{"総ページ数5以下は全件", 2, 4, []int{1, 2, 3, 4}},
		{"1ページのみ", 1, 1, []int{1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PageWindow(tt.current, tt.total)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("PageWindow(%d, %d) = %v, want %v", tt.current, tt.total, got, tt.want)
			}
		})
	}
}

// TestPageWindow_ZeroPages は総ページ数0でウィンドウが空になることを検証する。
func TestPageWindow_ZeroPages(t *testing.T) {
	if got := PageWindow(1, 0); got != nil {
		t.Errorf("PageWindow(1, 0) = %v, want nil", got)
	}
}

// TestPageWindow_AtMostFiveLinks はウィンドウが常に5件以下であることを検証する。
func TestPageWindow_AtMostFiveLinks(t *testing.T) {
	for total := 1; total <= 20; total++ {
		for current := 1; current <= total; current++ {
			if got := PageWindow(current, total); len(got) > maxPageLinks {
				t.Errorf("PageWindow(%d, %d) has %d links, want <= %d", current, total, len(got), maxPageLinks)
			}
		}
	}
}

// TestSummaryRange は1始まりの閉区間[start, end]の計算を検証する。
func TestSummaryRange(t *testing.T) {
	tests := []struct {
		current, pageSize, total int
		wantStart, wantEnd       int
	}{
		{1, 20, 45, 1, 20},
		{2, 20, 45, 21, 40},
		// 最終ページは総件数で打ち切られる
		{3, 20, 45, 41, 45},
		{1, 20, 5, 1, 5},
		{1, 10, 10, 1, 10},
	}
	for _, tt := range tests {
		start, end := SummaryRange(tt.current, tt.pageSize, tt.total)
		if start != tt.wantStart || end != tt.wantEnd {
			t.Errorf("SummaryRange(%d, %d, %d) = (%d, %d), want (%d, %d)",
				tt.current, tt.pageSize, tt.total, start, end, tt.wantStart, tt.wantEnd)
		}
	}
}

// TestSummaryText はサマリー行の表示フォーマットを検証する。
func TestSummaryText(t *testing.T) {
	if got := SummaryText(3, 20, 45); got != "41-45 / 全45件" {
		t.Errorf("SummaryText(3, 20, 45) = %q, want %q", got, "41-45 / 全45件")
	}
	if got := SummaryText(1, 20, 45); got != "1-20 / 全45件" {
		t.Errorf("SummaryText(1, 20, 45) = %q, want %q", got, "1-20 / 全45件")
	}
}
