package rest

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"rentaldesk-backend/internal/access"
	"rentaldesk-backend/internal/domain"
)

const dateLayout = "2006-01-02"

func parseDate(s string) (time.Time, error) {
	return time.Parse(dateLayout, s)
}

type createRentRequest struct {
	ClientID       int32   `json:"client_id"`
	EquipmentIDs   []int32 `json:"equipment_ids"`
	StartDate      string  `json:"start_date"`
	PlannedEndDate string  `json:"planned_end_date"`
}

type rentResponse struct {
	Rent  *domain.Rent      `json:"rent"`
	Items []domain.RentItem `json:"items,omitempty"`
}

func (s *Server) handleListRents(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.requireRead(w, r, access.ResourceRents); !ok {
		return
	}
	page, pageSize := s.pagination(r)
	items, total, err := s.rental.ListRents(r.Context(), r.URL.Query().Get("status"), page, pageSize)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, pagedResponse{Items: items, Total: total, Page: page, PageSize: pageSize})
}

func (s *Server) handleListRentItems(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.requireRead(w, r, access.ResourceRents); !ok {
		return
	}
	page, pageSize := s.pagination(r)
	items, total, err := s.store.RentRepository.ListItems(r.Context(), page, pageSize)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, pagedResponse{Items: items, Total: total, Page: page, PageSize: pageSize})
}

func (s *Server) handleGetRent(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.requireRead(w, r, access.ResourceRents); !ok {
		return
	}
	id, ok := pathID(mux.Vars(r), "id")
	if !ok {
		s.writeBadRequest(w, "invalid rent id")
		return
	}
	rent, items, err := s.rental.GetRent(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, rentResponse{Rent: rent, Items: items})
}

func (s *Server) handleCreateRent(w http.ResponseWriter, r *http.Request) {
	actor, ok := s.requireWrite(w, r, access.ResourceRents)
	if !ok {
		return
	}
	var req createRentRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeBadRequest(w, "invalid request body")
		return
	}
	start, err := parseDate(req.StartDate)
	if err != nil {
		s.writeBadRequest(w, "start_date must be YYYY-MM-DD")
		return
	}
	plannedEnd, err := parseDate(req.PlannedEndDate)
	if err != nil {
		s.writeBadRequest(w, "planned_end_date must be YYYY-MM-DD")
		return
	}
	rent, err := s.rental.CreateRent(r.Context(), actor, req.ClientID, req.EquipmentIDs, start, plannedEnd)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, rentResponse{Rent: rent})
}

type quoteRequest struct {
	EquipmentIDs []int32 `json:"equipment_ids"`
	StartDate    string  `json:"start_date"`
	EndDate      string  `json:"end_date"`
}

func (s *Server) handleQuoteRent(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.requireRead(w, r, access.ResourceRents); !ok {
		return
	}
	var req quoteRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeBadRequest(w, "invalid request body")
		return
	}
	start, err := parseDate(req.StartDate)
	if err != nil {
		s.writeBadRequest(w, "start_date must be YYYY-MM-DD")
		return
	}
	end, err := parseDate(req.EndDate)
	if err != nil {
		s.writeBadRequest(w, "end_date must be YYYY-MM-DD")
		return
	}
	cost, err := s.rental.QuoteCost(r.Context(), req.EquipmentIDs, start, end)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]decimal.Decimal{"total_amount": cost})
}

type completeRentRequest struct {
	ActualEndDate string `json:"actual_end_date"`
}

func (s *Server) handleCompleteRent(w http.ResponseWriter, r *http.Request) {
	actor, ok := s.requireWrite(w, r, access.ResourceRents)
	if !ok {
		return
	}
	id, ok := pathID(mux.Vars(r), "id")
	if !ok {
		s.writeBadRequest(w, "invalid rent id")
		return
	}
	var req completeRentRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeBadRequest(w, "invalid request body")
		return
	}
	actualEnd := time.Now()
	if req.ActualEndDate != "" {
		var err error
		if actualEnd, err = parseDate(req.ActualEndDate); err != nil {
			s.writeBadRequest(w, "actual_end_date must be YYYY-MM-DD")
			return
		}
	}
	rent, err := s.rental.CompleteRent(r.Context(), actor, id, actualEnd)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, rentResponse{Rent: rent})
}

type payRentRequest struct {
	PaymentMethod     domain.PaymentMethod `json:"payment_method"`
	TransactionNumber string               `json:"transaction_number,omitempty"`
	PaymentDate       string               `json:"payment_date,omitempty"`
}

func (s *Server) handlePayRent(w http.ResponseWriter, r *http.Request) {
	actor, ok := s.requireWrite(w, r, access.ResourceRents)
	if !ok {
		return
	}
	id, ok := pathID(mux.Vars(r), "id")
	if !ok {
		s.writeBadRequest(w, "invalid rent id")
		return
	}
	var req payRentRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeBadRequest(w, "invalid request body")
		return
	}
	paymentDate := time.Now()
	if req.PaymentDate != "" {
		var err error
		if paymentDate, err = parseDate(req.PaymentDate); err != nil {
			s.writeBadRequest(w, "payment_date must be YYYY-MM-DD")
			return
		}
	}
	rent, err := s.rental.ProcessPayment(r.Context(), actor, id, req.PaymentMethod, req.TransactionNumber, paymentDate)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, rentResponse{Rent: rent})
}

type extendRentRequest struct {
	NewPlannedEndDate string `json:"new_planned_end_date"`
}

func (s *Server) handleExtendRent(w http.ResponseWriter, r *http.Request) {
	actor, ok := s.requireWrite(w, r, access.ResourceRents)
	if !ok {
		return
	}
	id, ok := pathID(mux.Vars(r), "id")
	if !ok {
		s.writeBadRequest(w, "invalid rent id")
		return
	}
	var req extendRentRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeBadRequest(w, "invalid request body")
		return
	}
	newEnd, err := parseDate(req.NewPlannedEndDate)
	if err != nil {
		s.writeBadRequest(w, "new_planned_end_date must be YYYY-MM-DD")
		return
	}
	rent, err := s.rental.ExtendRent(r.Context(), actor, id, newEnd)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, rentResponse{Rent: rent})
}

func (s *Server) handleDeleteRent(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(r.Context())
	if !ok {
		s.writeError(w, http.StatusUnauthorized, "unauthorized", "authentication required", nil)
		return
	}
	id, okID := pathID(mux.Vars(r), "id")
	if !okID {
		s.writeBadRequest(w, "invalid rent id")
		return
	}
	// Admin gating happens in the service.
	if err := s.rental.DeleteRent(r.Context(), actor, id); err != nil {
		s.writeServiceError(w, err)
		return
	}
	s.writeJSON(w, http.StatusNoContent, nil)
}

func (s *Server) handleRentLateFee(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.requireRead(w, r, access.ResourceRents); !ok {
		return
	}
	id, ok := pathID(mux.Vars(r), "id")
	if !ok {
		s.writeBadRequest(w, "invalid rent id")
		return
	}
	fee, err := s.rental.LateFee(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]decimal.Decimal{"late_fee": fee})
}
