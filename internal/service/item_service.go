package service

import (
	"context"
	"regexp"

	"github.com/kuxall/InventoryManagementSystem/internal/apperr"
	"github.com/kuxall/InventoryManagementSystem/internal/dto"
	"github.com/kuxall/InventoryManagementSystem/internal/model"
	"github.com/kuxall/InventoryManagementSystem/internal/repository"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const itemCacheKey = "cache:items"

// AlertNotifier receives the low-stock alert set produced after a mutation.
// The worker dispatcher implements it; a nil notifier disables notifications.
type AlertNotifier interface {
	NotifyLowStock(ctx context.Context, alerts []dto.AlertResponse)
}

// ItemService defines the business logic contract for inventory records.
// Every mutation takes the caller's Session and is rejected with
// apperr.ErrPermissionDenied before any storage access when the role does
// not permit it.
type ItemService interface {
	Create(ctx context.Context, session model.Session, req dto.CreateItemRequest) (*dto.ItemResponse, error)
	Get(ctx context.Context, itemID string) (*dto.ItemResponse, error)
	List(ctx context.Context) (*dto.ItemListResponse, error)
	Search(ctx context.Context, query string) (*dto.ItemListResponse, error)
	Update(ctx context.Context, session model.Session, itemID string, req dto.UpdateItemRequest) (*dto.ItemResponse, error)
	Delete(ctx context.Context, session model.Session, itemID string) error
	LowStock(ctx context.Context) ([]dto.AlertResponse, error)
}

type itemService struct {
	repo     repository.ItemRepository
	rdb      *redis.Client
	notifier AlertNotifier
}

func NewItemService(repo repository.ItemRepository, rdb *redis.Client, notifier AlertNotifier) ItemService {
	return &itemService{repo: repo, rdb: rdb, notifier: notifier}
}

func mapItem(i model.Item) dto.ItemResponse {
	return dto.ItemResponse{
		ItemID:     i.ItemID,
		Name:       i.Name,
		Category:   i.Category,
		Quantity:   i.Quantity,
		Price:      i.Price,
		ImagePath:  i.ImagePath,
		Threshold:  i.Threshold,
		TotalValue: i.TotalValue(),
	}
}

func (s *itemService) Create(ctx context.Context, session model.Session, req dto.CreateItemRequest) (*dto.ItemResponse, error) {
	if !session.CanMutate() {
		return nil, apperr.ErrPermissionDenied
	}

	item := &model.Item{
		ItemID:    req.ItemID,
		Name:      req.Name,
		Category:  req.Category,
		Quantity:  req.Quantity,
		Price:     req.Price,
		ImagePath: req.ImagePath,
		Threshold: req.Threshold,
	}
	if verr := ValidateItem(item, true); verr != nil {
		return nil, verr
	}

	// Uniqueness guard before the insert; the DB unique index remains the
	// final authority against races.
	if _, err := s.repo.FindByItemID(ctx, req.ItemID); err == nil {
		return nil, &apperr.DuplicateKeyError{ItemID: req.ItemID}
	} else if !apperr.IsNotFound(err) {
		return nil, err
	}

	if err := s.repo.Create(ctx, item); err != nil {
		return nil, err
	}

	s.afterMutation(ctx)
	resp := mapItem(*item)
	return &resp, nil
}

func (s *itemService) Get(ctx context.Context, itemID string) (*dto.ItemResponse, error) {
	item, err := s.repo.FindByItemID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	resp := mapItem(*item)
	return &resp, nil
}

func (s *itemService) List(ctx context.Context) (*dto.ItemListResponse, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	resp := &dto.ItemListResponse{Data: make([]dto.ItemResponse, 0, len(items)), Total: len(items)}
	for _, i := range items {
		resp.Data = append(resp.Data, mapItem(i))
	}
	return resp, nil
}

// Search filters the live snapshot with a case-insensitive pattern matched
// against item_id, name, and category. An empty query returns the full
// snapshot untouched. The query is compiled as a regular expression; if it
// does not compile it degrades to a literal substring match, so operators
// can paste anything into the search box.
func (s *itemService) Search(ctx context.Context, query string) (*dto.ItemListResponse, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	if query == "" {
		resp := &dto.ItemListResponse{Data: make([]dto.ItemResponse, 0, len(items)), Total: len(items)}
		for _, i := range items {
			resp.Data = append(resp.Data, mapItem(i))
		}
		return resp, nil
	}

	re, err := regexp.Compile("(?i)" + query)
	if err != nil {
		re = regexp.MustCompile("(?i)" + regexp.QuoteMeta(query))
	}

	resp := &dto.ItemListResponse{Data: []dto.ItemResponse{}}
	for _, i := range items {
		if re.MatchString(i.ItemID) || re.MatchString(i.Name) || re.MatchString(i.Category) {
			resp.Data = append(resp.Data, mapItem(i))
		}
	}
	resp.Total = len(resp.Data)
	return resp, nil
}

// Update replaces all mutable fields atomically. Partial updates are not
// supported: the request carries the full replacement state.
func (s *itemService) Update(ctx context.Context, session model.Session, itemID string, req dto.UpdateItemRequest) (*dto.ItemResponse, error) {
	if !session.CanMutate() {
		return nil, apperr.ErrPermissionDenied
	}

	item := &model.Item{
		ItemID:    itemID,
		Name:      req.Name,
		Category:  req.Category,
		Quantity:  req.Quantity,
		Price:     req.Price,
		ImagePath: req.ImagePath,
		Threshold: req.Threshold,
	}
	if verr := ValidateItem(item, false); verr != nil {
		return nil, verr
	}

	// Existence guard so callers get NotFound before any write is attempted.
	if _, err := s.repo.FindByItemID(ctx, itemID); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, item); err != nil {
		return nil, err
	}

	s.afterMutation(ctx)

	stored, err := s.repo.FindByItemID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	resp := mapItem(*stored)
	return &resp, nil
}

func (s *itemService) Delete(ctx context.Context, session model.Session, itemID string) error {
	if !session.CanMutate() {
		return apperr.ErrPermissionDenied
	}
	if err := s.repo.Delete(ctx, itemID); err != nil {
		return err
	}
	s.afterMutation(ctx)
	return nil
}

// LowStock scans the current snapshot and reports every record whose
// quantity sits below its threshold, in insertion order. An empty result is
// the normal healthy state, not an error.
func (s *itemService) LowStock(ctx context.Context) ([]dto.AlertResponse, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	alerts := []dto.AlertResponse{}
	for _, i := range items {
		if i.BelowThreshold() {
			alerts = append(alerts, dto.AlertResponse{
				ItemID:    i.ItemID,
				Name:      i.Name,
				Quantity:  i.Quantity,
				Threshold: i.Threshold,
			})
		}
	}
	return alerts, nil
}

// afterMutation invalidates the snapshot cache and runs the threshold scan.
// Both are best-effort: a cache or notification failure never rolls back a
// committed mutation.
func (s *itemService) afterMutation(ctx context.Context) {
	if s.rdb != nil {
		if err := s.rdb.Del(ctx, itemCacheKey).Err(); err != nil {
			log.Warn().Err(err).Msg("item cache invalidation failed")
		}
	}

	alerts, err := s.LowStock(ctx)
	if err != nil {
		log.Error().Err(err).Msg("low-stock scan failed after mutation")
		return
	}
	for _, a := range alerts {
		log.Warn().
			Str("item_id", a.ItemID).
			Str("name", a.Name).
			Int("quantity", a.Quantity).
			Int("threshold", a.Threshold).
			Msg("item below threshold")
	}
	if len(alerts) > 0 && s.notifier != nil {
		s.notifier.NotifyLowStock(ctx, alerts)
	}
}
