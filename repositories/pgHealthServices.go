package repositories

import (
	"context"

	"healthbridge/db"
	"healthbridge/entities"
)

type healthServicePgRepository struct {
	db db.Database
}

func NewHealthServicePgRepository(database db.Database) HealthServiceRepository {
	return &healthServicePgRepository{db: database}
}

func (r *healthServicePgRepository) Create(ctx context.Context, service *entities.HealthService) error {
	return translate(r.db.GetDB().WithContext(ctx).Create(service).Error, "create health service")
}

func (r *healthServicePgRepository) GetAll(ctx context.Context) ([]entities.HealthService, error) {
	services := []entities.HealthService{}
	err := r.db.GetDB().WithContext(ctx).Order("created_at ASC").Find(&services).Error
	if err != nil {
		return nil, translate(err, "list health services")
	}
	return services, nil
}
