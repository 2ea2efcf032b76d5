package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"vending-machine/models"
	"vending-machine/service"
)

// Handler is the HTTP layer that talks to service.Service through the
// authenticated request pipeline.
type Handler struct {
	svc      *service.Service
	pipeline *Pipeline
	log      *logrus.Logger
}

// NewHandler returns a Handler instance
func NewHandler(svc *service.Service, log *logrus.Logger) *Handler {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Handler{
		svc:      svc,
		pipeline: NewPipeline(svc.Carts()),
		log:      log,
	}
}

// RegisterRoutes registers all routes on the provided router
func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/products", h.ListProducts).Methods("GET")
	r.HandleFunc("/add-payment", h.AddPayment).Methods("POST")
	r.HandleFunc("/purchase", h.Purchase).Methods("POST")
	r.HandleFunc("/final-purchase", h.FinalPurchase).Methods("GET")
}

// --- helpers ---

func writeOutcome(w http.ResponseWriter, out Outcome) {
	if out.Body == nil {
		w.WriteHeader(out.Status)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(out.Status)
	_ = json.NewEncoder(w).Encode(out.Body)
}

// --- Handler ---

// ListProducts handles GET /products
func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	out := h.pipeline.ForRequest(r).Authenticated(func(_ *models.Cart, _ Params) Outcome {
		return OK(h.svc.Products())
	})
	writeOutcome(w, out)
}

// AddPayment handles POST /add-payment?money=...
func (h *Handler) AddPayment(w http.ResponseWriter, r *http.Request) {
	out := h.pipeline.ForRequest(r).
		Mandatory("money", ParamDecimal).
		Authenticated(func(cart *models.Cart, params Params) Outcome {
			money := params.Decimal("money")
			if err := h.svc.AddPayment(cart, money); err != nil {
				return BadRequest(err.Error())
			}
			return OKEmpty()
		})
	writeOutcome(w, out)
}

// Purchase handles POST /purchase?item=...
func (h *Handler) Purchase(w http.ResponseWriter, r *http.Request) {
	out := h.pipeline.ForRequest(r).
		Mandatory("item", ParamString).
		Authenticated(func(cart *models.Cart, params Params) Outcome {
			item := params.String("item")
			if err := h.svc.Purchase(cart, item); err != nil {
				h.log.WithFields(logrus.Fields{
					"userId": cart.UserID,
					"item":   item,
				}).Info("purchase rejected")
				return BadRequest("Unable to purchase item")
			}
			return OKEmpty()
		})
	writeOutcome(w, out)
}

// FinalPurchase handles GET /final-purchase. The response carries the
// cart's final state; the live cart is gone by the time the body is
// written.
func (h *Handler) FinalPurchase(w http.ResponseWriter, r *http.Request) {
	out := h.pipeline.ForRequest(r).Authenticated(func(cart *models.Cart, _ Params) Outcome {
		return OK(h.svc.Finalize(cart))
	})
	writeOutcome(w, out)
}
