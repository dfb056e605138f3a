// Package http provides http transport for the production line
package http

import (
	stdhttp "net/http"

	"linetrack/internal/modkit/httpkit"
	"linetrack/internal/platform/net/http/bind"
	"linetrack/internal/services/production/domain"
)

// Register mounts production endpoints on the given router
func Register(r httpkit.Router, s domain.ServicePort) {
	h := &handlers{svc: s}

	// live view, advances the line when the current item is done
	httpkit.Get(r, "/status", h.status)

	httpkit.Post(r, "/start", h.start)
	httpkit.Post(r, "/stop", h.stop)

	// queue editing
	httpkit.Get(r, "/queue", h.state)
	httpkit.PostJSON[domain.AddItemInput](r, "/queue", h.addItem)
	httpkit.Get(r, "/queue/{idx}", h.item)
	httpkit.PutJSON[domain.EditItemInput](r, "/queue/{idx}", h.editItem)
	httpkit.Delete(r, "/queue/{idx}", h.deleteItem)

	httpkit.Get(r, "/shift", h.shift)
}

type handlers struct{ svc domain.ServicePort }

// swagger:route GET /production/status Production productionStatus
// @Summary Live progress of the current item
// @Description Recomputes progress from the wall clock. When the target is reached the item is
// @Description closed into a report and the next queued item starts.
// @Tags Production
// @Produce json
// @Success 200 {object} domain.Progress "ok"
// @Failure 503 {object} httpkit.Envelope "state unavailable"
// @Router /production/status [get]
func (h *handlers) status(r *stdhttp.Request) (any, error) {
	return h.svc.Poll(r.Context())
}

// swagger:route POST /production/start Production productionStart
// @Summary Start timing the current item
// @Description No-op when already running or when nothing is queued
// @Tags Production
// @Produce json
// @Success 200 {object} domain.StateView "ok"
// @Failure 503 {object} httpkit.Envelope "state not saved"
// @Router /production/start [post]
func (h *handlers) start(r *stdhttp.Request) (any, error) {
	return h.svc.Start(r.Context())
}

// swagger:route POST /production/stop Production productionStop
// @Summary Stop the timer
// @Tags Production
// @Produce json
// @Success 200 {object} domain.StateView "ok"
// @Failure 503 {object} httpkit.Envelope "state not saved"
// @Router /production/stop [post]
func (h *handlers) stop(r *stdhttp.Request) (any, error) {
	return h.svc.Stop(r.Context())
}

// swagger:route GET /production/queue Production productionQueue
// @Summary Production record and queue
// @Tags Production
// @Produce json
// @Success 200 {object} domain.StateView "ok"
// @Router /production/queue [get]
func (h *handlers) state(r *stdhttp.Request) (any, error) {
	return h.svc.State(r.Context())
}

// swagger:route POST /production/queue Production productionAddItem
// @Summary Append an item to the queue
// @Tags Production
// @Accept json
// @Produce json
// @Param payload body domain.AddItemInput true "Item"
// @Success 201 {object} domain.StateView "queued"
// @Failure 400 {object} httpkit.Envelope "validation error"
// @Router /production/queue [post]
func (h *handlers) addItem(r *stdhttp.Request, in domain.AddItemInput) (any, error) {
	v, err := h.svc.AddItem(r.Context(), in)
	if err != nil {
		return nil, err
	}
	return httpkit.Created(v), nil
}

// swagger:route GET /production/queue/{idx} Production productionItem
// @Summary One queue entry
// @Tags Production
// @Produce json
// @Param idx path int true "Queue position, 0 is the current item"
// @Success 200 {object} domain.QueuedItem "ok"
// @Failure 404 {object} httpkit.Envelope "queue index out of range"
// @Router /production/queue/{idx} [get]
func (h *handlers) item(r *stdhttp.Request) (any, error) {
	idx, err := bind.PathInt(r, "idx")
	if err != nil {
		return nil, err
	}
	return h.svc.Item(r.Context(), idx)
}

// swagger:route PUT /production/queue/{idx} Production productionEditItem
// @Summary Replace one queue entry
// @Description Editing position 0 does not change the live current item
// @Tags Production
// @Accept json
// @Produce json
// @Param idx path int true "Queue position"
// @Param payload body domain.EditItemInput true "Item"
// @Success 200 {object} domain.StateView "ok"
// @Failure 404 {object} httpkit.Envelope "queue index out of range"
// @Router /production/queue/{idx} [put]
func (h *handlers) editItem(r *stdhttp.Request, in domain.EditItemInput) (any, error) {
	idx, err := bind.PathInt(r, "idx")
	if err != nil {
		return nil, err
	}
	return h.svc.EditItem(r.Context(), idx, in)
}

// swagger:route DELETE /production/queue/{idx} Production productionDeleteItem
// @Summary Remove one queue entry
// @Description An unknown position leaves the queue untouched
// @Tags Production
// @Produce json
// @Param idx path int true "Queue position"
// @Success 200 {object} domain.StateView "ok"
// @Router /production/queue/{idx} [delete]
func (h *handlers) deleteItem(r *stdhttp.Request) (any, error) {
	idx, err := bind.PathInt(r, "idx")
	if err != nil {
		return nil, err
	}
	return h.svc.DeleteItem(r.Context(), idx)
}

// swagger:route GET /production/shift Production productionShift
// @Summary Shift for the current wall clock
// @Tags Production
// @Produce json
// @Success 200 {object} domain.ShiftView "ok"
// @Router /production/shift [get]
func (h *handlers) shift(r *stdhttp.Request) (any, error) {
	return h.svc.CurrentShift(r.Context())
}
