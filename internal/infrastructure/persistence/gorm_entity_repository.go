package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ber-data/bertron-client/internal/domain/entities"
	"github.com/ber-data/bertron-client/internal/infrastructure/persistence/models"
	"github.com/ber-data/bertron-client/internal/pkg/logger"

	"gorm.io/gorm"
)

type gormEntityRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormEntityRepository creates a new GORM-based EntityRepository implementation
func NewGormEntityRepository(db *gorm.DB, logger logger.Logger) (entities.EntityRepository, error) {
	return &gormEntityRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormEntityRepository) Create(ctx context.Context, entity *entities.Entity) error {
	// Validate domain entity (business rules)
	if err := entity.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	// Convert to GORM model
	model := &models.EntityModel{}
	model.FromDomain(entity)

	var count int64
	if err := r.db.WithContext(ctx).Model(&models.EntityModel{}).Where("id = ?", entity.ID).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check for existing entity: %w", err)
	}
	if count > 0 {
		return fmt.Errorf("entity with ID %s: %w", entity.ID, entities.ErrDuplicateEntity)
	}

	// Persist to database
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create entity: %w", err)
	}

	r.logger.Info("Created entity with id ", entity.ID)
	return nil
}

func (r *gormEntityRepository) List(ctx context.Context, query *entities.EntityQuery) ([]*entities.Entity, error) {
	if err := query.Validate(); err != nil {
		return nil, fmt.Errorf("invalid query parameters: %w", err)
	}

	var modelList []*models.EntityModel
	dbQuery := r.db.WithContext(ctx).Model(&models.EntityModel{})

	// Apply filters
	if query.Source != "" {
		dbQuery = dbQuery.Where("ber_data_source = ?", query.Source)
	}
	if query.EntityType != "" {
		cond := containsCondition("entity_type", query.EntityType)
		dbQuery = dbQuery.Where(cond.expr, cond.args...)
	}
	if query.Name != "" {
		dbQuery = dbQuery.Where("name LIKE ?", "%"+query.Name+"%")
	}

	// Sorting
	if query.SortBy != "" {
		order := query.SortOrder
		if order == "" {
			order = "asc"
		}
		dbQuery = dbQuery.Order(fmt.Sprintf("%s %s", query.SortBy, order))
	}

	// Pagination
	if query.Limit > 0 {
		dbQuery = dbQuery.Limit(query.Limit)
	}
	if query.Offset > 0 {
		dbQuery = dbQuery.Offset(query.Offset)
	}

	if err := dbQuery.Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch entities: %w", err)
	}

	return toDomainList(modelList), nil
}

func (r *gormEntityRepository) GetByID(ctx context.Context, entityID string) (*entities.Entity, error) {
	var model models.EntityModel
	if err := r.db.WithContext(ctx).Where("id = ?", entityID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("entity with ID %s: %w", entityID, entities.ErrEntityNotFound)
		}
		return nil, fmt.Errorf("failed to fetch entity: %w", err)
	}
	return model.ToDomain(), nil
}

func (r *gormEntityRepository) Find(ctx context.Context, query *entities.FindQuery) ([]*entities.Entity, error) {
	if err := query.Validate(); err != nil {
		return nil, fmt.Errorf("invalid query parameters: %w", err)
	}

	plan, err := translateFilter(query.Filter)
	if err != nil {
		return nil, fmt.Errorf("invalid filter: %w", err)
	}

	dbQuery := r.db.WithContext(ctx).Model(&models.EntityModel{})
	for _, cond := range plan.conditions {
		dbQuery = dbQuery.Where(cond.expr, cond.args...)
	}

	orderClauses, err := sortClauses(query.Sort)
	if err != nil {
		return nil, fmt.Errorf("invalid sort: %w", err)
	}
	if len(orderClauses) > 0 {
		dbQuery = dbQuery.Order(strings.Join(orderClauses, ", "))
	}

	// Regex conditions are evaluated in Go, so pagination moves after the
	// post-filter in that case.
	if !plan.needsPostFilter() {
		dbQuery = dbQuery.Offset(query.Skip).Limit(query.Limit)
	}

	var modelList []*models.EntityModel
	if err := dbQuery.Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch entities: %w", err)
	}

	domainList := toDomainList(modelList)

	if plan.needsPostFilter() {
		domainList = applyRegexes(domainList, plan.regexes)
		domainList = paginate(domainList, query.Skip, query.Limit)
	}

	return domainList, nil
}

func (r *gormEntityRepository) ListInBoundingBox(ctx context.Context, box *entities.BoundingBoxQuery) ([]*entities.Entity, error) {
	if err := box.Validate(); err != nil {
		return nil, fmt.Errorf("invalid query parameters: %w", err)
	}

	dbQuery := r.db.WithContext(ctx).Model(&models.EntityModel{}).
		Where("latitude >= ? AND latitude <= ?", box.SouthwestLat, box.NortheastLat)

	if box.CrossesAntimeridian() {
		dbQuery = dbQuery.Where("longitude >= ? OR longitude <= ?", box.SouthwestLng, box.NortheastLng)
	} else {
		dbQuery = dbQuery.Where("longitude >= ? AND longitude <= ?", box.SouthwestLng, box.NortheastLng)
	}

	var modelList []*models.EntityModel
	if err := dbQuery.Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch entities: %w", err)
	}

	return toDomainList(modelList), nil
}

func (r *gormEntityRepository) DeleteByID(ctx context.Context, entityID string) error {
	result := r.db.WithContext(ctx).Where("id = ?", entityID).Delete(&models.EntityModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete entity: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("entity with ID %s: %w", entityID, entities.ErrEntityNotFound)
	}

	r.logger.Info("Deleted entity with id ", entityID)
	return nil
}

func toDomainList(modelList []*models.EntityModel) []*entities.Entity {
	domainList := make([]*entities.Entity, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}
	return domainList
}

func applyRegexes(list []*entities.Entity, regexes []regexCondition) []*entities.Entity {
	filtered := make([]*entities.Entity, 0, len(list))
	for _, entity := range list {
		matched := true
		for i := range regexes {
			if !regexes[i].matches(entity) {
				matched = false
				break
			}
		}
		if matched {
			filtered = append(filtered, entity)
		}
	}
	return filtered
}

func paginate(list []*entities.Entity, skip, limit int) []*entities.Entity {
	if skip >= len(list) {
		return []*entities.Entity{}
	}
	list = list[skip:]
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list
}
