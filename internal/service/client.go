package service

import (
	"context"
	"fmt"
	"strings"

	"rentaldesk-backend/internal/access"
	"rentaldesk-backend/internal/domain"
	"rentaldesk-backend/internal/repository"
)

type clientService struct {
	clients repository.ClientRepository
	audit   repository.AuditLogRepository
}

func NewClientService(clients repository.ClientRepository, audit repository.AuditLogRepository) ClientService {
	return &clientService{clients: clients, audit: audit}
}

func (s *clientService) CreateClient(ctx context.Context, actor Actor, client *domain.Client) error {
	if !access.CanWrite(actor.Roles, access.ResourceClients) {
		return domain.ErrPermissionDenied
	}
	if err := validateClient(client); err != nil {
		return err
	}
	if err := s.clients.Create(ctx, client); err != nil {
		return err
	}
	recordAction(ctx, s.audit, actor, domain.ActionCreate, fmt.Sprintf("Added client %s (ID: %d)", client.Email, client.ID), true)
	return nil
}

func (s *clientService) UpdateClient(ctx context.Context, actor Actor, client *domain.Client) error {
	if !access.CanWrite(actor.Roles, access.ResourceClients) {
		return domain.ErrPermissionDenied
	}
	if err := validateClient(client); err != nil {
		return err
	}
	if err := s.clients.Update(ctx, client); err != nil {
		return err
	}
	recordAction(ctx, s.audit, actor, domain.ActionUpdate, fmt.Sprintf("Updated client %s (ID: %d)", client.Email, client.ID), true)
	return nil
}

func (s *clientService) DeleteClient(ctx context.Context, actor Actor, id int32) error {
	if !access.CanWrite(actor.Roles, access.ResourceClients) {
		return domain.ErrPermissionDenied
	}
	if err := s.clients.Delete(ctx, id); err != nil {
		return err
	}
	recordAction(ctx, s.audit, actor, domain.ActionDelete, fmt.Sprintf("Deleted client ID %d", id), true)
	return nil
}

func (s *clientService) GetClient(ctx context.Context, id int32) (*domain.Client, error) {
	return s.clients.GetByID(ctx, id)
}

func (s *clientService) ListClients(ctx context.Context, clientType string, page, pageSize int32) ([]domain.Client, int32, error) {
	return s.clients.List(ctx, clientType, page, pageSize)
}

func (s *clientService) SetIndDetails(ctx context.Context, actor Actor, details *domain.IndClient) error {
	if !access.CanWrite(actor.Roles, access.ResourceClients) {
		return domain.ErrPermissionDenied
	}
	client, err := s.clients.GetByID(ctx, details.ClientID)
	if err != nil {
		return err
	}
	if client.Type != domain.ClientTypeIndividual {
		return domain.NewValidationError("client %d is not an individual", details.ClientID)
	}
	if details.LastName == "" || details.FirstName == "" {
		return domain.NewValidationError("first and last name are required")
	}
	if err := s.clients.UpsertIndDetails(ctx, details); err != nil {
		return err
	}
	recordAction(ctx, s.audit, actor, domain.ActionUpdate, fmt.Sprintf("Saved individual details for client ID %d", details.ClientID), true)
	return nil
}

func (s *clientService) GetIndDetails(ctx context.Context, clientID int32) (*domain.IndClient, error) {
	return s.clients.GetIndDetails(ctx, clientID)
}

func (s *clientService) SetCompDetails(ctx context.Context, actor Actor, details *domain.CompClient) error {
	if !access.CanWrite(actor.Roles, access.ResourceClients) {
		return domain.ErrPermissionDenied
	}
	client, err := s.clients.GetByID(ctx, details.ClientID)
	if err != nil {
		return err
	}
	if client.Type != domain.ClientTypeCompany {
		return domain.NewValidationError("client %d is not a company", details.ClientID)
	}
	if details.CompanyName == "" {
		return domain.NewValidationError("company name is required")
	}
	if err := s.clients.UpsertCompDetails(ctx, details); err != nil {
		return err
	}
	recordAction(ctx, s.audit, actor, domain.ActionUpdate, fmt.Sprintf("Saved company details for client ID %d", details.ClientID), true)
	return nil
}

func (s *clientService) GetCompDetails(ctx context.Context, clientID int32) (*domain.CompClient, error) {
	return s.clients.GetCompDetails(ctx, clientID)
}

func validateClient(client *domain.Client) error {
	if client.Email == "" || !strings.Contains(client.Email, "@") {
		return domain.NewValidationError("a valid email is required")
	}
	if !client.Type.Valid() {
		return domain.NewValidationError("unknown client type %q", client.Type)
	}
	return nil
}
