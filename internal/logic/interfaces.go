package logic

import "ouroboros/internal/domain"

// ItemStore provides access to the carousel's logical items. Implementations satisfy
// carousel.ItemProvider.
type ItemStore interface {
	ItemCount() int
	CellContent(logical int) string
	GetItem(logical int) (domain.Item, bool)
	SetItems(items []domain.Item)
}
