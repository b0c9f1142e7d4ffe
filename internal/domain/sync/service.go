package sync

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/exp/slog"

	"siigosync/internal/domain/invoice"
	"siigosync/internal/domain/order"
	"siigosync/internal/domain/product"
)

// Servicer интерфейс сервиса синхронизации каталога и заказов
type Servicer interface {
	// PullProducts создает локально товары, которые есть только в Siigo
	PullProducts(ctx context.Context) (*Result, error)

	// PushProducts создает в Siigo товары, которые есть только локально
	PushProducts(ctx context.Context) (*Result, error)

	// SyncInventory отправляет локальные остатки в Siigo
	SyncInventory(ctx context.Context) (*Result, error)

	// ApplyOrderDelta меняет остатки по позициям заказа: sign -1 списание, +1 возврат
	ApplyOrderDelta(ctx context.Context, event order.Event, sign int) (*Result, error)

	// SubmitInvoice выставляет счет по заказу, если он еще не выставлен
	SubmitInvoice(ctx context.Context, event order.Event) (*Result, error)

	// ResyncInvoices повторно выставляет счета по набору заказов
	ResyncInvoices(ctx context.Context, events []order.Event) (*Result, error)
}

// Service реализация сервиса синхронизации. Проходы последовательные,
// ошибка одного товара не прерывает проход.
type Service struct {
	remote   Remote
	products product.Repository
	invoices invoice.Repository
	log      *slog.Logger
	locks    *keyedMutex
	observer PassObserver
	now      func() time.Time
}

func NewService(remote Remote, products product.Repository, invoices invoice.Repository, log *slog.Logger) *Service {
	return &Service{
		remote:   remote,
		products: products,
		invoices: invoices,
		log:      log.With("component", "sync_service"),
		locks:    newKeyedMutex(),
		now:      time.Now,
	}
}

// WithObserver подключает учет итогов проходов (метрики)
func (s *Service) WithObserver(o PassObserver) *Service {
	s.observer = o
	return s
}

func (s *Service) PullProducts(ctx context.Context) (*Result, error) {
	res, log := s.start(OpPullProducts)

	remote, err := s.remote.ListProducts(ctx)
	if err != nil {
		return s.abort(res, log, "list remote products", err)
	}
	local, err := s.products.List(ctx, 0)
	if err != nil {
		return s.abort(res, log, "list local products", err)
	}

	known := product.IndexByCode(local)
	for _, rp := range remote {
		if !rp.HasCode() {
			res.Skipped++
			continue
		}
		if _, ok := known[rp.Code]; ok {
			continue
		}

		p := &product.Product{
			Code:     rp.Code,
			Name:     rp.Name,
			Price:    rp.Price,
			Stock:    rp.Stock,
			RemoteID: rp.RemoteID,
			Status:   product.StatusPublish,
		}
		if err := s.products.Save(ctx, p); err != nil {
			s.itemFailed(res, log, rp.Code, err)
			continue
		}

		known[p.Code] = p
		res.Count++
	}

	return s.finish(res, log, fmt.Sprintf("%d products created locally", res.Count)), nil
}

func (s *Service) PushProducts(ctx context.Context) (*Result, error) {
	res, log := s.start(OpPushProducts)

	remote, err := s.remote.ListProducts(ctx)
	if err != nil {
		return s.abort(res, log, "list remote products", err)
	}
	local, err := s.products.List(ctx, 0)
	if err != nil {
		return s.abort(res, log, "list local products", err)
	}

	existing := make(map[string]struct{}, len(remote))
	for _, rp := range remote {
		if rp.HasCode() {
			existing[rp.Code] = struct{}{}
		}
	}

	for i := range local {
		lp := &local[i]
		if !lp.HasCode() {
			res.Skipped++
			continue
		}
		if _, ok := existing[lp.Code]; ok {
			continue
		}

		created, err := s.remote.CreateProduct(ctx, *lp)
		if err != nil {
			s.itemFailed(res, log, lp.Code, err)
			continue
		}

		existing[lp.Code] = struct{}{}
		res.Count++

		if created == nil || created.RemoteID == "" || created.RemoteID == lp.RemoteID {
			continue
		}
		if err := s.storeRemoteID(ctx, lp.Code, created.RemoteID); err != nil {
			log.Warn("failed to store remote id",
				"code", lp.Code,
				"remote_id", created.RemoteID,
				"error", err,
			)
		}
	}

	return s.finish(res, log, fmt.Sprintf("%d products created in Siigo", res.Count)), nil
}

func (s *Service) SyncInventory(ctx context.Context) (*Result, error) {
	res, log := s.start(OpSyncInventory)

	remote, err := s.remote.ListProducts(ctx)
	if err != nil {
		return s.abort(res, log, "list remote products", err)
	}
	local, err := s.products.List(ctx, 0)
	if err != nil {
		return s.abort(res, log, "list local products", err)
	}

	index := product.IndexByCode(remote)
	for _, lp := range local {
		if !lp.HasCode() {
			res.Skipped++
			continue
		}
		if _, ok := index[lp.Code]; !ok {
			log.Debug("product missing in Siigo", "code", lp.Code)
			res.Skipped++
			continue
		}

		sent, err := s.pushStock(ctx, lp.Code)
		switch {
		case err != nil:
			s.itemFailed(res, log, lp.Code, err)
		case !sent:
			res.Skipped++
		default:
			res.Count++
		}
	}

	return s.finish(res, log, fmt.Sprintf("%d products updated", res.Count)), nil
}

func (s *Service) ApplyOrderDelta(ctx context.Context, event order.Event, sign int) (*Result, error) {
	res, log := s.start(OpInventoryDelta)
	log = log.With("order_id", event.ID)

	if sign != -1 && sign != 1 {
		return s.abort(res, log, "apply order delta", ErrInvalidSign)
	}

	for _, it := range event.Items {
		if it.Code == "" || it.Quantity == 0 {
			res.Skipped++
			continue
		}

		applied, err := s.applyItemDelta(ctx, log, it.Code, sign*it.Quantity)
		switch {
		case err != nil:
			s.itemFailed(res, log, it.Code, err)
		case !applied:
			res.Skipped++
		default:
			res.Count++
		}
	}

	return s.finish(res, log, fmt.Sprintf("stock adjusted for %d items", res.Count)), nil
}

// storeRemoteID дописывает RemoteID в актуальную локальную запись.
// Остаток не трогается: его могли изменить после снимка каталога.
func (s *Service) storeRemoteID(ctx context.Context, code, remoteID string) error {
	unlock := s.locks.Lock(code)
	defer unlock()

	p, err := s.products.GetByCode(ctx, code)
	if err != nil {
		return fmt.Errorf("get local product: %w", err)
	}
	p.RemoteID = remoteID

	return s.products.Save(ctx, p)
}

// pushStock отправляет в Siigo текущий остаток под блокировкой кода,
// чтобы не обогнать и не затереть изменения по заказам
func (s *Service) pushStock(ctx context.Context, code string) (bool, error) {
	unlock := s.locks.Lock(code)
	defer unlock()

	p, err := s.products.GetByCode(ctx, code)
	if errors.Is(err, product.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("get local product: %w", err)
	}

	if err := s.remote.UpdateInventory(ctx, code, p.Stock); err != nil {
		return false, err
	}

	return true, nil
}

// applyItemDelta чтение, изменение и запись остатка под блокировкой кода
func (s *Service) applyItemDelta(ctx context.Context, log *slog.Logger, code string, delta int) (bool, error) {
	unlock := s.locks.Lock(code)
	defer unlock()

	p, err := s.products.GetByCode(ctx, code)
	if errors.Is(err, product.ErrNotFound) {
		log.Debug("order item has no local product", "code", code)
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("get local product: %w", err)
	}

	before := p.Stock
	p.ApplyDelta(delta)

	if err := s.products.Save(ctx, p); err != nil {
		return false, fmt.Errorf("save local stock: %w", err)
	}
	if err := s.remote.UpdateInventory(ctx, code, p.Stock); err != nil {
		log.Warn("local stock changed, Siigo not updated",
			"code", code,
			"before", before,
			"after", p.Stock,
		)
		return false, fmt.Errorf("%w (local stock %d -> %d): %w", ErrRemotePending, before, p.Stock, err)
	}

	log.Debug("stock adjusted", "code", code, "before", before, "after", p.Stock)

	return true, nil
}

func (s *Service) SubmitInvoice(ctx context.Context, event order.Event) (*Result, error) {
	res, log := s.start(OpInvoiceSubmit)
	log = log.With("order_id", event.ID)

	invoiceID, created, err := s.submitInvoice(ctx, event)
	if err != nil {
		return s.abort(res, log, "submit invoice", err)
	}
	if !created {
		return s.finish(res, log, fmt.Sprintf("order %s already invoiced as %s", event.ID, invoiceID)), nil
	}

	res.Count = 1
	return s.finish(res, log, fmt.Sprintf("invoice %s created", invoiceID)), nil
}

func (s *Service) ResyncInvoices(ctx context.Context, events []order.Event) (*Result, error) {
	res, log := s.start(OpInvoiceResync)

	for _, event := range events {
		_, created, err := s.submitInvoice(ctx, event)
		switch {
		case err != nil:
			s.itemFailed(res, log, event.ID, err)
		case !created:
			res.Skipped++
		default:
			res.Count++
		}
	}

	return s.finish(res, log, fmt.Sprintf("%d invoices created", res.Count)), nil
}

// submitInvoice возвращает id счета и признак того, что он создан сейчас
func (s *Service) submitInvoice(ctx context.Context, event order.Event) (string, bool, error) {
	existing, err := s.invoices.GetInvoiceID(ctx, event.ID)
	switch {
	case err == nil && existing != "":
		return existing, false, nil
	case err != nil && !errors.Is(err, invoice.ErrNotFound):
		return "", false, fmt.Errorf("get invoice id: %w", err)
	}

	inv := invoice.FromOrder(event)
	if len(inv.Items) == 0 {
		return "", false, invoice.ErrEmpty
	}

	invoiceID, err := s.remote.CreateInvoice(ctx, inv)
	if err != nil {
		return "", false, err
	}

	if err := s.invoices.SaveInvoiceID(ctx, event.ID, invoiceID); err != nil {
		return invoiceID, false, fmt.Errorf("store invoice id %s: %w", invoiceID, err)
	}

	return invoiceID, true, nil
}

func (s *Service) start(op string) (*Result, *slog.Logger) {
	res := &Result{
		RunID:     uuid.NewString(),
		Operation: op,
		StartTime: s.now(),
	}
	log := s.log.With("run_id", res.RunID, "operation", op)
	log.Debug("sync pass started")
	return res, log
}

func (s *Service) itemFailed(res *Result, log *slog.Logger, key string, err error) {
	log.Error("sync item failed", "code", key, "error", err)
	res.Failed++
	res.Errors = append(res.Errors, ItemError{Key: key, Error: err.Error()})
}

func (s *Service) finish(res *Result, log *slog.Logger, msg string) *Result {
	res.EndTime = s.now()
	res.Duration = res.EndTime.Sub(res.StartTime)
	res.Success = true
	res.Message = msg
	if res.Failed > 0 {
		res.Message = fmt.Sprintf("%s, %d failed", msg, res.Failed)
	}

	log.Info("sync pass finished",
		"count", res.Count,
		"skipped", res.Skipped,
		"failed", res.Failed,
		"duration", res.Duration,
	)
	s.observe(res)

	return res
}

// abort завершает проход, в котором ничего не было сделано
func (s *Service) abort(res *Result, log *slog.Logger, step string, err error) (*Result, error) {
	res.EndTime = s.now()
	res.Duration = res.EndTime.Sub(res.StartTime)
	res.Success = false
	res.Message = fmt.Sprintf("%s: %v", step, err)

	log.Error("sync pass aborted", "step", step, "error", err)
	s.observe(res)

	return res, fmt.Errorf("%w: %s: %s: %w", ErrPassFailed, res.Operation, step, err)
}

func (s *Service) observe(res *Result) {
	if s.observer != nil {
		s.observer.ObservePass(res)
	}
}
