package criteria_repository

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

const criteriaColumns = `
	criteria_id, kind, title, property_types, statuses,
	state, city, min_price, max_price, bedrooms, bathrooms,
	contact_name, contact_email, contact_phone,
	status, owner_user_id, created_at, updated_at`

type CriteriaRepository struct {
	db  *pgxpool.Pool
	log *slog.Logger
}

func NewCriteriaRepository(db *pgxpool.Pool, log *slog.Logger) *CriteriaRepository {
	return &CriteriaRepository{db: db, log: log}
}

// CreateCriteria — сохраняет потребность покупателя или hot sheet.
func (r *CriteriaRepository) CreateCriteria(ctx context.Context, c domain.Criteria) (uuid.UUID, error) {
	const op = "CriteriaRepository.CreateCriteria"

	query := `
		INSERT INTO criteria (
			kind, title, property_types, statuses,
			state, city, min_price, max_price, bedrooms, bathrooms,
			contact_name, contact_email, contact_phone,
			status, owner_user_id
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING criteria_id
	`

	var id uuid.UUID
	err := r.db.QueryRow(ctx, query,
		c.Kind.String(),
		c.Title,
		typesToStrings(c.PropertyTypes),
		statusesToStrings(c.Statuses),
		normalizeStatePtr(c.State),
		c.City,
		c.MinPrice,
		c.MaxPrice,
		c.Bedrooms,
		c.Bathrooms,
		c.ContactName,
		c.ContactEmail,
		c.ContactPhone,
		c.Status.String(),
		c.OwnerUserID,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	return id, nil
}

// GetByID — получает критерии по ID.
func (r *CriteriaRepository) GetByID(ctx context.Context, id uuid.UUID) (domain.Criteria, error) {
	const op = "CriteriaRepository.GetByID"

	query := `SELECT ` + criteriaColumns + ` FROM criteria WHERE criteria_id = $1`

	c, err := scanCriteria(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Criteria{}, fmt.Errorf("%s: %w", op, repository.ErrCriteriaNotFound)
		}
		return domain.Criteria{}, fmt.Errorf("%s: %w", op, err)
	}

	return c, nil
}

// UpdateCriteria — частичное обновление критериев.
func (r *CriteriaRepository) UpdateCriteria(ctx context.Context, id uuid.UUID, update domain.CriteriaFilter) error {
	const op = "CriteriaRepository.UpdateCriteria"

	var set repository.Args

	if update.Title != nil {
		set.Add("title = $%d", *update.Title)
	}
	if update.PropertyTypes != nil {
		set.Add("property_types = $%d", typesToStrings(*update.PropertyTypes))
	}
	if update.Statuses != nil {
		set.Add("statuses = $%d", statusesToStrings(*update.Statuses))
	}
	if update.State != nil {
		set.Add("state = $%d", normalizeStatePtr(update.State))
	}
	if update.City != nil {
		set.Add("city = $%d", emptyToNil(*update.City))
	}
	if update.MinPrice != nil {
		set.Add("min_price = $%d", *update.MinPrice)
	}
	if update.MaxPrice != nil {
		set.Add("max_price = $%d", *update.MaxPrice)
	}
	if update.Bedrooms != nil {
		set.Add("bedrooms = $%d", *update.Bedrooms)
	}
	if update.Bathrooms != nil {
		set.Add("bathrooms = $%d", *update.Bathrooms)
	}
	if update.ContactName != nil {
		set.Add("contact_name = $%d", *update.ContactName)
	}
	if update.ContactEmail != nil {
		set.Add("contact_email = $%d", emptyToNil(*update.ContactEmail))
	}
	if update.ContactPhone != nil {
		set.Add("contact_phone = $%d", emptyToNil(*update.ContactPhone))
	}
	if update.Status != nil {
		set.Add("status = $%d", update.Status.String())
	}
	if update.OwnerUserID != nil {
		set.Add("owner_user_id = $%d", *update.OwnerUserID)
	}

	if set.Len() == 0 {
		return fmt.Errorf("%s: %w", op, repository.ErrNoFieldsToUpdate)
	}

	set.Add("updated_at = NOW()")
	idParam := set.Bind(id)
	query := fmt.Sprintf(`UPDATE criteria SET %s WHERE criteria_id = %s`, set.Join(", "), idParam)

	tag, err := r.db.Exec(ctx, query, set.Params()...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, repository.ErrCriteriaNotFound)
	}

	return nil
}

// ListCriteria — возвращает критерии по фильтру с cursor-пагинацией по created_at.
func (r *CriteriaRepository) ListCriteria(ctx context.Context, filter domain.CriteriaFilter) (*domain.PaginatedResult[domain.Criteria], error) {
	const op = "CriteriaRepository.ListCriteria"

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

	if filter.Kind != nil {
		where.Add("kind = $%d", filter.Kind.String())
	}
	if filter.Status != nil {
		where.Add("status = $%d", filter.Status.String())
	}
	if filter.OwnerUserID != nil {
		where.Add("owner_user_id = $%d", *filter.OwnerUserID)
	}
	if filter.State != nil {
		where.Add("state = $%d", domain.NormalizeState(*filter.State))
	}

	var totalCount int32
	err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM criteria"+where.Where(), where.Params()...).Scan(&totalCount)
	if err != nil {
		return nil, fmt.Errorf("%s: count failed: %w", op, err)
	}

	page := where.Clone()
	if cursor != nil {
		cmp := lo.Ternary(orderDir == domain.OrderDesc, "<", ">")
		page.Add("(created_at, criteria_id) "+cmp+" ($%d, $%d)", cursor.LastCreatedAt, cursor.LastID)
	}

	dir := strings.ToUpper(string(orderDir))
	query := `SELECT ` + criteriaColumns + ` FROM criteria` + page.Where() +
		fmt.Sprintf(" ORDER BY created_at %s, criteria_id %s LIMIT %s", dir, dir, page.Bind(pageSize+1))

	rows, err := r.db.Query(ctx, query, page.Params()...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	items, err := collectCriteria(rows)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	hasMore := len(items) > pageSize
	if hasMore {
		items = items[:pageSize]
	}

	var nextPageToken string
	if hasMore && len(items) > 0 {
		last := items[len(items)-1]
		nextPageToken = (&domain.PageCursor{LastID: last.ID, LastCreatedAt: last.CreatedAt}).Encode()
	}

	return &domain.PaginatedResult[domain.Criteria]{
		Items:         items,
		NextPageToken: nextPageToken,
		TotalCount:    totalCount,
		HasMore:       hasMore,
	}, nil
}

// ListNeedCandidates — предфильтр активных потребностей покупателей для объявления:
// штат совпадает или не задан, бюджет не задан или покрывает цену.
func (r *CriteriaRepository) ListNeedCandidates(ctx context.Context, f domain.NeedCandidateFilter) ([]domain.Criteria, error) {
	const op = "CriteriaRepository.ListNeedCandidates"

	var where repository.Args
	where.Add("kind = $%d", domain.CriteriaKindBuyerNeed.String())
	where.Add("status = $%d", domain.CriteriaStatusActive.String())
	where.Add("(state IS NULL OR state = '' OR state = $%d)", f.State)
	where.Add("(max_price IS NULL OR max_price >= $%d)", f.Price)

	query := `SELECT ` + criteriaColumns + ` FROM criteria` + where.Where() + " ORDER BY created_at ASC, criteria_id ASC"
	if f.Limit > 0 {
		query += " LIMIT " + where.Bind(f.Limit)
	}

	rows, err := r.db.Query(ctx, query, where.Params()...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	items, err := collectCriteria(rows)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if f.Limit > 0 && len(items) == f.Limit {
		r.log.Warn("buyer need candidates hit the limit, prospects may be incomplete",
			slog.String("op", op), slog.Int("limit", f.Limit))
	}

	return items, nil
}

func collectCriteria(rows pgx.Rows) ([]domain.Criteria, error) {
	items := make([]domain.Criteria, 0)
	for rows.Next() {
		c, err := scanCriteria(rows)
		if err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		items = append(items, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return items, nil
}

func scanCriteria(row pgx.Row) (domain.Criteria, error) {
	var c domain.Criteria
	var kindStr, statusStr string
	var types, statuses []string
	err := row.Scan(
		&c.ID,
		&kindStr,
		&c.Title,
		&types,
		&statuses,
		&c.State,
		&c.City,
		&c.MinPrice,
		&c.MaxPrice,
		&c.Bedrooms,
		&c.Bathrooms,
		&c.ContactName,
		&c.ContactEmail,
		&c.ContactPhone,
		&statusStr,
		&c.OwnerUserID,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return domain.Criteria{}, err
	}
	c.Kind = domain.CriteriaKind(kindStr)
	c.Status = domain.CriteriaStatus(statusStr)
	if len(types) > 0 {
		c.PropertyTypes = lo.Map(types, func(s string, _ int) domain.PropertyType { return domain.PropertyType(s) })
	}
	if len(statuses) > 0 {
		c.Statuses = lo.Map(statuses, func(s string, _ int) domain.ListingStatus { return domain.ListingStatus(s) })
	}
	return c, nil
}

func typesToStrings(types []domain.PropertyType) []string {
	if len(types) == 0 {
		return nil
	}
	return lo.Map(types, func(t domain.PropertyType, _ int) string { return t.String() })
}

func statusesToStrings(statuses []domain.ListingStatus) []string {
	if len(statuses) == 0 {
		return nil
	}
	return lo.Map(statuses, func(s domain.ListingStatus, _ int) string { return s.String() })
}

// normalizeStatePtr хранит штат кодом; пустая строка пишется как NULL.
func normalizeStatePtr(state *string) *string {
	if state == nil || strings.TrimSpace(*state) == "" {
		return nil
	}
	return lo.ToPtr(domain.NormalizeState(*state))
}

func emptyToNil(s string) *string {
	return lo.EmptyableToPtr(strings.TrimSpace(s))
}
