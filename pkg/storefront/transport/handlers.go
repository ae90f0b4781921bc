package transport

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	cartmodel "storefront/pkg/cart/domain/model"
	catalogmodel "storefront/pkg/catalog/domain/model"
	"storefront/pkg/storefront/application/service"
)

const requestIDHeader = "X-Request-ID"

type Handler struct {
	svc service.StorefrontService
}

func Router(svc service.StorefrontService) http.Handler {
	h := &Handler{svc: svc}

	r := mux.NewRouter()
	r.HandleFunc("/healthz", h.health).Methods(http.MethodGet)

	s := r.PathPrefix("/api/v1").Subrouter()
	s.HandleFunc("/cart", h.getCart).Methods(http.MethodGet)
	s.HandleFunc("/cart", h.clearCart).Methods(http.MethodDelete)
	s.HandleFunc("/cart/items", h.addItem).Methods(http.MethodPost)
	s.HandleFunc("/cart/items", h.updateQuantity).Methods(http.MethodPut)
	s.HandleFunc("/cart/items", h.removeItem).Methods(http.MethodDelete)

	s.HandleFunc("/products", h.listProducts).Methods(http.MethodGet)
	s.HandleFunc("/products/trending", h.trending).Methods(http.MethodGet)
	s.HandleFunc("/products/{ID}", h.productPage).Methods(http.MethodGet)
	s.HandleFunc("/products/{ID}/recommendations", h.recommendations).Methods(http.MethodGet)
	s.HandleFunc("/users/{ID}/recommendations", h.userRecommendations).Methods(http.MethodGet)

	return logMiddleware(r)
}

func (h *Handler) health(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) getCart(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, toCartResponse(h.svc.Cart()))
}

func (h *Handler) clearCart(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.ClearCart(r.Context()); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toCartResponse(h.svc.Cart()))
}

func (h *Handler) addItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errBadRequest)
		return
	}
	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}

	if _, err := h.svc.AddToCart(r.Context(), req.ProductID.String(), quantity, req.Size, req.Color); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toCartResponse(h.svc.Cart()))
}

func (h *Handler) updateQuantity(w http.ResponseWriter, r *http.Request) {
	var req updateQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Quantity == nil {
		writeError(w, errBadRequest)
		return
	}

	key := cartmodel.NewItemKey(req.ProductID.String(), req.Size, req.Color)
	if key.ProductID == "" {
		writeError(w, errBadRequest)
		return
	}
	if err := h.svc.UpdateQuantity(r.Context(), key, *req.Quantity); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toCartResponse(h.svc.Cart()))
}

func (h *Handler) removeItem(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	key := cartmodel.NewItemKey(q.Get("productId"), q.Get("size"), q.Get("color"))
	if key.ProductID == "" {
		writeError(w, errBadRequest)
		return
	}

	if err := h.svc.RemoveFromCart(r.Context(), key); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toCartResponse(h.svc.Cart()))
}

func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	products := h.svc.Browse(r.Context(), catalogmodel.ProductFilter{
		Category: q.Get("category"),
		Search:   q.Get("search"),
	})
	writeJSON(w, http.StatusOK, toProductResponses(products))
}

func (h *Handler) trending(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, toProductResponses(h.svc.Trending(r.Context())))
}

func (h *Handler) productPage(w http.ResponseWriter, r *http.Request) {
	page, err := h.svc.ProductPage(r.Context(), mux.Vars(r)["ID"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, productPageResponse{
		Product:         toProductResponse(page.Product),
		Recommendations: toProductResponses(page.Recommendations),
	})
}

func (h *Handler) recommendations(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			writeError(w, errBadRequest)
			return
		}
		limit = n
	}
	products := h.svc.Recommendations(r.Context(), mux.Vars(r)["ID"], limit)
	writeJSON(w, http.StatusOK, toProductResponses(products))
}

func (h *Handler) userRecommendations(w http.ResponseWriter, r *http.Request) {
	products := h.svc.UserRecommendations(r.Context(), mux.Vars(r)["ID"])
	writeJSON(w, http.StatusOK, toProductResponses(products))
}

var errBadRequest = errors.New("malformed request")

func statusFor(err error) int {
	switch {
	case errors.Is(err, errBadRequest),
		errors.Is(err, cartmodel.ErrInvalidQuantity),
		errors.Is(err, service.ErrSizeRequired),
		errors.Is(err, service.ErrColorRequired),
		errors.Is(err, service.ErrInsufficientStock),
		errors.Is(err, service.ErrInvalidProductID):
		return http.StatusBadRequest
	case errors.Is(err, catalogmodel.ErrProductNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		log.WithError(err).Error("request failed")
		message = "internal error"
	}
	writeJSON(w, status, errorResponse{Error: message})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.WithError(err).Error("write response")
	}
}

func logMiddleware(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(requestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, requestID)

		log.WithFields(log.Fields{
			"requestID":  requestID,
			"method":     r.Method,
			"url":        r.URL,
			"remoteAddr": r.RemoteAddr,
			"userAgent":  r.UserAgent(),
		}).Info("got a new request")
		h.ServeHTTP(w, r)
	})
}
