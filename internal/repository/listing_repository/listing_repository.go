package listing_repository

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"listing_exchange/internal/domain"
	"listing_exchange/internal/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/samber/lo"
)

const listingColumns = `
	listing_id, title, address, city, state, property_type,
	price, bedrooms, bathrooms, square_feet,
	status, agent_user_id, created_at, updated_at`

type ListingRepository struct {
	db  *pgxpool.Pool
	log *slog.Logger
}

func NewListingRepository(db *pgxpool.Pool, log *slog.Logger) *ListingRepository {
	return &ListingRepository{db: db, log: log}
}

// CreateListing — создаёт новое объявление.
func (r *ListingRepository) CreateListing(ctx context.Context, l domain.Listing) (uuid.UUID, error) {
	const op = "ListingRepository.CreateListing"

	query := `
		INSERT INTO listings (
			title, address, city, state, property_type,
			price, bedrooms, bathrooms, square_feet,
			status, agent_user_id
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING listing_id
	`

	var id uuid.UUID
	err := r.db.QueryRow(ctx, query,
		l.Title,
		l.Address,
		l.City,
		domain.NormalizeState(l.State),
		l.PropertyType.String(),
		l.Price,
		l.Bedrooms,
		l.Bathrooms,
		l.SquareFeet,
		l.Status.String(),
		l.AgentUserID,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	return id, nil
}

// GetByID — получает объявление по ID.
func (r *ListingRepository) GetByID(ctx context.Context, id uuid.UUID) (domain.Listing, error) {
	const op = "ListingRepository.GetByID"

	query := `SELECT ` + listingColumns + ` FROM listings WHERE listing_id = $1`

	l, err := scanListing(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Listing{}, fmt.Errorf("%s: %w", op, repository.ErrListingNotFound)
		}
		return domain.Listing{}, fmt.Errorf("%s: %w", op, err)
	}

	return l, nil
}

// UpdateListing — частичное обновление объявления.
func (r *ListingRepository) UpdateListing(ctx context.Context, id uuid.UUID, update domain.ListingFilter) error {
	const op = "ListingRepository.UpdateListing"

	var set repository.Args

	if update.Title != nil {
		set.Add("title = $%d", *update.Title)
	}
	if update.Address != nil {
		set.Add("address = $%d", *update.Address)
	}
	if update.City != nil {
		set.Add("city = $%d", *update.City)
	}
	if update.State != nil {
		set.Add("state = $%d", domain.NormalizeState(*update.State))
	}
	if update.PropertyType != nil {
		set.Add("property_type = $%d", update.PropertyType.String())
	}
	if update.Price != nil {
		set.Add("price = $%d", *update.Price)
	}
	if update.Bedrooms != nil {
		set.Add("bedrooms = $%d", *update.Bedrooms)
	}
	if update.Bathrooms != nil {
		set.Add("bathrooms = $%d", *update.Bathrooms)
	}
	if update.SquareFeet != nil {
		set.Add("square_feet = $%d", *update.SquareFeet)
	}
	if update.Status != nil {
		set.Add("status = $%d", update.Status.String())
	}
	if update.AgentUserID != nil {
		set.Add("agent_user_id = $%d", *update.AgentUserID)
	}

	if set.Len() == 0 {
		return fmt.Errorf("%s: %w", op, repository.ErrNoFieldsToUpdate)
	}

	set.Add("updated_at = NOW()")
	idParam := set.Bind(id)
	query := fmt.Sprintf(`UPDATE listings SET %s WHERE listing_id = %s`, set.Join(", "), idParam)

	tag, err := r.db.Exec(ctx, query, set.Params()...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, repository.ErrListingNotFound)
	}

	return nil
}

// ListListings — возвращает объявления по фильтру с cursor-пагинацией по created_at.
func (r *ListingRepository) ListListings(ctx context.Context, filter domain.ListingFilter) (*domain.PaginatedResult[domain.Listing], error) {
	const op = "ListingRepository.ListListings"

	pageSize := int(domain.DefaultPageSize)
	orderDir := domain.OrderDesc
	var cursor *domain.PageCursor

	if filter.Pagination != nil {
		pageSize = int(domain.NormalizePageSize(filter.Pagination.PageSize))
		orderDir = domain.NormalizeOrderDirection(string(filter.Pagination.OrderDirection))

		if filter.Pagination.PageToken != "" {
			var err error
			cursor, err = domain.DecodePageCursor(filter.Pagination.PageToken)
			if err != nil {
				r.log.Warn("failed to decode page cursor, starting from beginning", "error", err)
				cursor = nil
			}
		}
	}

	var where repository.Args

	if filter.Status != nil {
		where.Add("status = $%d", filter.Status.String())
	}
	if filter.AgentUserID != nil {
		where.Add("agent_user_id = $%d", *filter.AgentUserID)
	}
	if filter.PropertyType != nil {
		where.Add("property_type = $%d", filter.PropertyType.String())
	}
	if filter.State != nil {
		where.Add("state = $%d", domain.NormalizeState(*filter.State))
	}
	if filter.City != nil {
		where.Add("city ILIKE $%d", "%"+*filter.City+"%")
	}
	if filter.MinPrice != nil {
		where.Add("price >= $%d", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		where.Add("price <= $%d", *filter.MaxPrice)
	}
	if filter.Bedrooms != nil {
		where.Add("bedrooms >= $%d", *filter.Bedrooms)
	}
	if filter.Bathrooms != nil {
		where.Add("bathrooms >= $%d", *filter.Bathrooms)
	}

	var totalCount int32
	err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM listings"+where.Where(), where.Params()...).Scan(&totalCount)
	if err != nil {
		return nil, fmt.Errorf("%s: count failed: %w", op, err)
	}

	page := where.Clone()
	if cursor != nil {
		cmp := lo.Ternary(orderDir == domain.OrderDesc, "<", ">")
		page.Add("(created_at, listing_id) "+cmp+" ($%d, $%d)", cursor.LastCreatedAt, cursor.LastID)
	}

	dir := strings.ToUpper(string(orderDir))
	query := `SELECT ` + listingColumns + ` FROM listings` + page.Where() +
		fmt.Sprintf(" ORDER BY created_at %s, listing_id %s LIMIT %s", dir, dir, page.Bind(pageSize+1))

	rows, err := r.db.Query(ctx, query, page.Params()...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	listings, err := collectListings(rows)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	hasMore := len(listings) > pageSize
	if hasMore {
		listings = listings[:pageSize]
	}

	var nextPageToken string
	if hasMore && len(listings) > 0 {
		last := listings[len(listings)-1]
		nextPageToken = (&domain.PageCursor{LastID: last.ID, LastCreatedAt: last.CreatedAt}).Encode()
	}

	return &domain.PaginatedResult[domain.Listing]{
		Items:         listings,
		NextPageToken: nextPageToken,
		TotalCount:    totalCount,
		HasMore:       hasMore,
	}, nil
}

// ListCandidates — предфильтр объявлений для hot sheet.
// Город и пороги по спальням/ванным здесь не проверяются: это делает matching.
func (r *ListingRepository) ListCandidates(ctx context.Context, f domain.ListingCandidateFilter) ([]domain.Listing, error) {
	const op = "ListingRepository.ListCandidates"

	var where repository.Args

	if f.State != nil {
		where.Add("state = $%d", *f.State)
	}
	if len(f.Statuses) > 0 {
		where.Add("status = ANY($%d)", lo.Map(f.Statuses, func(s domain.ListingStatus, _ int) string { return s.String() }))
	}
	if len(f.PropertyTypes) > 0 {
		where.Add("property_type = ANY($%d)", lo.Map(f.PropertyTypes, func(t domain.PropertyType, _ int) string { return t.String() }))
	}
	if f.MinPrice != nil {
		where.Add("price >= $%d", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		where.Add("price <= $%d", *f.MaxPrice)
	}

	query := `SELECT ` + listingColumns + ` FROM listings` + where.Where() + " ORDER BY created_at DESC, listing_id DESC"
	if f.Limit > 0 {
		query += " LIMIT " + where.Bind(f.Limit)
	}

	rows, err := r.db.Query(ctx, query, where.Params()...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	listings, err := collectListings(rows)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if f.Limit > 0 && len(listings) == f.Limit {
		r.log.Warn("listing candidates hit the limit, matches may be incomplete",
			slog.String("op", op), slog.Int("limit", f.Limit))
	}

	return listings, nil
}

func collectListings(rows pgx.Rows) ([]domain.Listing, error) {
	listings := make([]domain.Listing, 0)
	for rows.Next() {
		l, err := scanListing(rows)
		if err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		listings = append(listings, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return listings, nil
}

func scanListing(row pgx.Row) (domain.Listing, error) {
	var l domain.Listing
	var propertyTypeStr, statusStr string
	err := row.Scan(
		&l.ID,
		&l.Title,
		&l.Address,
		&l.City,
		&l.State,
		&propertyTypeStr,
		&l.Price,
		&l.Bedrooms,
		&l.Bathrooms,
		&l.SquareFeet,
		&statusStr,
		&l.AgentUserID,
		&l.CreatedAt,
		&l.UpdatedAt,
	)
	if err != nil {
		return domain.Listing{}, err
	}
	l.PropertyType = domain.PropertyType(propertyTypeStr)
	l.Status = domain.ListingStatus(statusStr)
	return l, nil
}
