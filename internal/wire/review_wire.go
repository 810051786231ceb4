package wire

import (
	"github.com/go-chi/chi/v5"
)

func wireReview(r chi.Router, rt *routes) {
	h := rt.handler.Review

	r.With(rt.limit).Get("/api/services/{id}/reviews", h.ListServiceReviews)

	customer := rt.protected(r, rt.customerOnly)
	customer.Post("/api/reviews", h.CreateReview)
	customer.Get("/api/customer/reviews", h.ListCustomerReviews)

	rt.protected(r, rt.adminOnly).Delete("/api/admin/reviews/{id}", h.DeleteReview)
}
