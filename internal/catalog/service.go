package catalog

import (
	"context"

	"github.com/hitoshi/komeprice/internal/model"
	"github.com/hitoshi/komeprice/internal/repository"
)

// Service はカタログの問い合わせサービス。
// リクエストごとに独立して動作し、プロセス内に状態を一切持たない。
type Service struct {
	repo repository.ProductRepository
}

// NewService はServiceの新しいインスタンスを生成する。
func NewService(repo repository.ProductRepository) *Service {
	return &Service{repo: repo}
}

// FetchPage はクエリに対応するカタログの1ページ分をPageViewとして返す。
//
// ストアへの問い合わせは総件数の取得とページ分の取得のちょうど2回で、
// 両者の間にトランザクション一貫性は要求しない（更新頻度の低いカタログのため、
// 2リード間のわずかな不整合は許容する）。
//
// ページ番号は[1, totalPages]にクランプしない。最終ページを超えるページは
// 空のItemsと正しいTotalPages/TotalProductsを持つPageViewになる。
// ストア障害時は*model.StoreErrorを返す。
func (s *Service) FetchPage(ctx context.Context, q Query) (*model.PageView, error) {
	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, model.NewStoreError("count", err)
	}

	// totalPages = ceil(total / pageSize)。total = 0 のとき0。
	totalPages := (total + q.PageSize - 1) / q.PageSize

	items, err := s.repo.ListPage(ctx, q.Sort, q.PageSize, q.Offset())
	if err != nil {
		return nil, model.NewStoreError("list", err)
	}

	return &model.PageView{
		Items:         items,
		CurrentPage:   q.Page,
		TotalPages:    totalPages,
		TotalProducts: total,
		Sort:          q.Sort,
		PageSize:      q.PageSize,
	}, nil
}
