package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ClientService manages client master records.
type ClientService interface {
	CreateClient(ctx context.Context, c Client) (*Client, error)
	UpdateClient(ctx context.Context, c Client) (*Client, error)
	GetClient(ctx context.Context, clientID int) (*Client, error)
	GetClients(ctx context.Context) ([]Client, error)
}

type clientService struct {
	pool *pgxpool.Pool
}

func NewClientService(pool *pgxpool.Pool) ClientService {
	return &clientService{pool: pool}
}

func (s *clientService) CreateClient(ctx context.Context, c Client) (*Client, error) {
	if c.Code == "" || c.Name == "" {
		return nil, validationErrorf("client code and name are required")
	}

	var out Client
	err := s.pool.QueryRow(ctx, `
		INSERT INTO clients (code, name, contact_person, email, phone, address, city, gst_number)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, code, name, contact_person, email, phone, address, city, gst_number, created_at
	`, c.Code, c.Name, c.ContactPerson, c.Email, c.Phone, c.Address, c.City, c.GSTNumber).Scan(
		&out.ID, &out.Code, &out.Name, &out.ContactPerson, &out.Email, &out.Phone,
		&out.Address, &out.City, &out.GSTNumber, &out.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}
	return &out, nil
}

func (s *clientService) UpdateClient(ctx context.Context, c Client) (*Client, error) {
	if c.Name == "" {
		return nil, validationErrorf("client name is required")
	}

	var out Client
	err := s.pool.QueryRow(ctx, `
		UPDATE clients
		SET name = $1, contact_person = $2, email = $3, phone = $4, address = $5, city = $6, gst_number = $7
		WHERE id = $8
		RETURNING id, code, name, contact_person, email, phone, address, city, gst_number, created_at
	`, c.Name, c.ContactPerson, c.Email, c.Phone, c.Address, c.City, c.GSTNumber, c.ID).Scan(
		&out.ID, &out.Code, &out.Name, &out.ContactPerson, &out.Email, &out.Phone,
		&out.Address, &out.City, &out.GSTNumber, &out.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("client %d not found", c.ID)
		}
		return nil, fmt.Errorf("failed to update client %d: %w", c.ID, err)
	}
	return &out, nil
}

func (s *clientService) GetClient(ctx context.Context, clientID int) (*Client, error) {
	var c Client
	err := s.pool.QueryRow(ctx, `
		SELECT id, code, name, contact_person, email, phone, address, city, gst_number, created_at
		FROM clients
		WHERE id = $1
	`, clientID).Scan(
		&c.ID, &c.Code, &c.Name, &c.ContactPerson, &c.Email, &c.Phone,
		&c.Address, &c.City, &c.GSTNumber, &c.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("client %d not found", clientID)
		}
		return nil, fmt.Errorf("failed to fetch client %d: %w", clientID, err)
	}
	return &c, nil
}

func (s *clientService) GetClients(ctx context.Context) ([]Client, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, code, name, contact_person, email, phone, address, city, gst_number, created_at
		FROM clients
		ORDER BY code
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query clients: %w", err)
	}
	defer rows.Close()

	var clients []Client
	for rows.Next() {
		var c Client
		if err := rows.Scan(
			&c.ID, &c.Code, &c.Name, &c.ContactPerson, &c.Email, &c.Phone,
			&c.Address, &c.City, &c.GSTNumber, &c.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan client: %w", err)
		}
		clients = append(clients, c)
	}
	return clients, nil
}
