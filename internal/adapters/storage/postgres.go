package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/athebyme/googleshopping-feed/internal/domain/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// CatalogStorageInterface определяет интерфейс взаимодействия с хранилищем PostgreSQL
type CatalogStorageInterface interface {
	// Варианты (поисковый индекс)
	ListVariations(ctx context.Context, settings *models.Settings, filter *models.DetailFilter, page, pageSize int) ([]*models.VariationRecord, error)

	// Каталог атрибутов
	ListAttributes(ctx context.Context, page, pageSize int) ([]models.Attribute, error)
	ListAttributeValues(ctx context.Context, attributeID int64, page, pageSize int) ([]models.AttributeValue, error)
	GetAttributeValueName(ctx context.Context, valueID int64, lang string) (string, error)

	// Справочник значений свойств
	ListSelections(ctx context.Context, propertyID int64, lang string) ([]models.PropertySelection, error)

	// Детальные данные
	GetDetails(ctx context.Context, variationIDs []int64, settings *models.Settings, filter *models.DetailFilter) ([]*models.DetailRecord, error)

	// Справочные данные помощника экспорта
	GetCategoryPath(ctx context.Context, categoryID int64, lang string, channelID int) (string, error)
	GetMarketplaceCategory(ctx context.Context, categoryID int64, marketplaceID float64) (string, error)
	GetManufacturerName(ctx context.Context, manufacturerID int64) (string, error)
	GetShippingCost(ctx context.Context, itemID int64) (*decimal.Decimal, error)
}

type CatalogStoragePort interface {
	CatalogStorageInterface

	Close() error
}

// CatalogStorage реализация интерфейса для PostgreSQL
type CatalogStorage struct {
	pool *pgxpool.Pool
}

// NewPostgresStorage создает новый экземпляр CatalogStorage
func NewPostgresStorage(ctx context.Context, connectionString string) (*CatalogStorage, error) {
	pool, err := pgxpool.New(ctx, connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}

	return &CatalogStorage{
		pool: pool,
	}, nil
}

func NewPostgresStorageWithPool(ctx context.Context, pool *pgxpool.Pool) (*CatalogStorage, error) {
	if pool == nil {
		return nil, errors.New("pool is nil")
	}
	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}
	return &CatalogStorage{
		pool: pool,
	}, nil
}

// Close закрывает соединение с БД
func (r *CatalogStorage) Close() error {
	r.pool.Close()
	return nil
}

// ListVariations возвращает одну страницу вариантов для экспорта.
// Сортировка по id стабильна между страницами одного запуска.
func (r *CatalogStorage) ListVariations(ctx context.Context, settings *models.Settings, filter *models.DetailFilter, page, pageSize int) ([]*models.VariationRecord, error) {
	baseQuery := `
		FROM catalog.variations v
		JOIN catalog.items i ON i.id = v.item_id
		WHERE v.is_active = true
	`

	args := []interface{}{}
	argPos := 1

	if filter != nil {
		if filter.CategoryID > 0 {
			baseQuery += fmt.Sprintf(" AND v.default_category_id = $%d", argPos)
			args = append(args, filter.CategoryID)
			argPos++
		}
		if filter.SupplierID > 0 {
			baseQuery += fmt.Sprintf(" AND i.supplier_id = $%d", argPos)
			args = append(args, filter.SupplierID)
			argPos++
		}
		if filter.OnlyWithSKU {
			baseQuery += " AND v.sku <> ''"
		}
	}

	dataQuery := `
		SELECT v.id, v.item_id, i.manufacturer_id, i.condition_id, i.name, i.description, i.url_path,
			v.model, v.name, v.weight_g, v.availability_id,
			v.unit_id, v.unit_content,
			v.attributes, v.barcodes, v.images,
			v.sku, v.default_category_id
	` + baseQuery + `
		ORDER BY v.id
		LIMIT $` + fmt.Sprint(argPos) + ` OFFSET $` + fmt.Sprint(argPos+1)

	args = append(args, pageSize, (page-1)*pageSize)

	rows, err := r.pool.Query(ctx, dataQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list variations: %w", err)
	}
	defer rows.Close()

	var variations []*models.VariationRecord
	for rows.Next() {
		var v models.VariationRecord
		var attributesJSON, barcodesJSON, imagesJSON []byte

		err := rows.Scan(
			&v.ID, &v.Item.ID, &v.Item.ManufacturerID, &v.Item.ConditionID,
			&v.Item.Name, &v.Item.Description, &v.Item.URLPath,
			&v.Data.Model, &v.Data.Name, &v.Data.WeightG, &v.Data.AvailabilityID,
			&v.Unit.ID, &v.Unit.Content,
			&attributesJSON, &barcodesJSON, &imagesJSON,
			&v.SKU, &v.DefaultCategoryID,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan variation row: %w", err)
		}

		if len(attributesJSON) > 0 {
			if err := json.Unmarshal(attributesJSON, &v.Attributes); err != nil {
				return nil, fmt.Errorf("failed to unmarshal variation attributes: %w", err)
			}
		}
		if len(barcodesJSON) > 0 {
			if err := json.Unmarshal(barcodesJSON, &v.Barcodes); err != nil {
				return nil, fmt.Errorf("failed to unmarshal variation barcodes: %w", err)
			}
		}
		if len(imagesJSON) > 0 {
			if err := json.Unmarshal(imagesJSON, &v.Images); err != nil {
				return nil, fmt.Errorf("failed to unmarshal variation images: %w", err)
			}
		}

		variations = append(variations, &v)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("error while iterating variation rows: %w", rows.Err())
	}

	return variations, nil
}

// ListAttributes возвращает одну страницу каталога атрибутов
func (r *CatalogStorage) ListAttributes(ctx context.Context, page, pageSize int) ([]models.Attribute, error) {
	query := `
		SELECT id, backend_name, COALESCE(marketplace_key, '')
		FROM catalog.attributes
		ORDER BY id
		LIMIT $1 OFFSET $2
	`

	rows, err := r.pool.Query(ctx, query, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to list attributes: %w", err)
	}
	defer rows.Close()

	var attributes []models.Attribute
	for rows.Next() {
		var a models.Attribute
		if err := rows.Scan(&a.ID, &a.BackendName, &a.MarketplaceKey); err != nil {
			return nil, fmt.Errorf("failed to scan attribute row: %w", err)
		}
		attributes = append(attributes, a)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("error while iterating attribute rows: %w", rows.Err())
	}

	return attributes, nil
}

// ListAttributeValues возвращает одну страницу значений атрибута
func (r *CatalogStorage) ListAttributeValues(ctx context.Context, attributeID int64, page, pageSize int) ([]models.AttributeValue, error) {
	query := `
		SELECT id, attribute_id, position
		FROM catalog.attribute_values
		WHERE attribute_id = $1
		ORDER BY position, id
		LIMIT $2 OFFSET $3
	`

	rows, err := r.pool.Query(ctx, query, attributeID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to list attribute values: %w", err)
	}
	defer rows.Close()

	var values []models.AttributeValue
	for rows.Next() {
		var v models.AttributeValue
		if err := rows.Scan(&v.ID, &v.AttributeID, &v.Position); err != nil {
			return nil, fmt.Errorf("failed to scan attribute value row: %w", err)
		}
		values = append(values, v)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("error while iterating attribute value rows: %w", rows.Err())
	}

	return values, nil
}

// GetAttributeValueName возвращает локализованное имя значения атрибута
func (r *CatalogStorage) GetAttributeValueName(ctx context.Context, valueID int64, lang string) (string, error) {
	query := `
		SELECT name
		FROM catalog.attribute_value_names
		WHERE value_id = $1 AND lang = $2
	`

	var name string
	err := r.pool.QueryRow(ctx, query, valueID, lang).Scan(&name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil // Имя не переведено
		}
		return "", fmt.Errorf("failed to get attribute value name: %w", err)
	}

	return name, nil
}

// ListSelections возвращает локализованные значения свойства типа "selection"
func (r *CatalogStorage) ListSelections(ctx context.Context, propertyID int64, lang string) ([]models.PropertySelection, error) {
	query := `
		SELECT id, property_id, lang, name
		FROM catalog.property_selections
		WHERE property_id = $1 AND lang = $2
		ORDER BY id
	`

	rows, err := r.pool.Query(ctx, query, propertyID, lang)
	if err != nil {
		return nil, fmt.Errorf("failed to list property selections: %w", err)
	}
	defer rows.Close()

	var selections []models.PropertySelection
	for rows.Next() {
		var s models.PropertySelection
		if err := rows.Scan(&s.ID, &s.PropertyID, &s.Lang, &s.Name); err != nil {
			return nil, fmt.Errorf("failed to scan property selection row: %w", err)
		}
		selections = append(selections, s)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("error while iterating property selection rows: %w", rows.Err())
	}

	return selections, nil
}

// GetDetails возвращает детальные записи для набора вариантов одним запросом
func (r *CatalogStorage) GetDetails(ctx context.Context, variationIDs []int64, settings *models.Settings, filter *models.DetailFilter) ([]*models.DetailRecord, error) {
	if len(variationIDs) == 0 {
		return nil, nil
	}

	query := `
		SELECT variation_id, item_id,
			retail_price, vat_value, recommended_price, special_offer_price,
			stock_net, properties
		FROM catalog.variation_details
		WHERE variation_id = ANY($1)
	`

	args := []interface{}{variationIDs}
	argPos := 2

	if filter != nil {
		if filter.OnlyInStock {
			query += " AND stock_net > 0"
		}
		if filter.MinStock > 0 {
			query += fmt.Sprintf(" AND stock_net >= $%d", argPos)
			args = append(args, filter.MinStock)
			argPos++
		}
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get variation details: %w", err)
	}
	defer rows.Close()

	var details []*models.DetailRecord
	for rows.Next() {
		var d models.DetailRecord
		var propertiesJSON []byte

		err := rows.Scan(
			&d.VariationID, &d.ItemID,
			&d.RetailPrice, &d.VATValue, &d.RecommendedPrice, &d.SpecialOfferPrice,
			&d.StockNet, &propertiesJSON,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan variation detail row: %w", err)
		}

		if len(propertiesJSON) > 0 {
			if err := json.Unmarshal(propertiesJSON, &d.Properties); err != nil {
				return nil, fmt.Errorf("failed to unmarshal detail properties: %w", err)
			}
		}

		details = append(details, &d)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("error while iterating variation detail rows: %w", rows.Err())
	}

	return details, nil
}

// GetCategoryPath возвращает полный путь категории на запрошенном языке
func (r *CatalogStorage) GetCategoryPath(ctx context.Context, categoryID int64, lang string, channelID int) (string, error) {
	query := `
		SELECT path
		FROM catalog.category_paths
		WHERE category_id = $1 AND lang = $2 AND channel_id = $3
	`

	var path string
	err := r.pool.QueryRow(ctx, query, categoryID, lang, channelID).Scan(&path)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("failed to get category path: %w", err)
	}

	return path, nil
}

// GetMarketplaceCategory возвращает категорию в терминах маркетплейса
func (r *CatalogStorage) GetMarketplaceCategory(ctx context.Context, categoryID int64, marketplaceID float64) (string, error) {
	query := `
		SELECT marketplace_category
		FROM catalog.category_marketplace_map
		WHERE category_id = $1 AND marketplace_id = $2
	`

	var category string
	err := r.pool.QueryRow(ctx, query, categoryID, marketplaceID).Scan(&category)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("failed to get marketplace category: %w", err)
	}

	return category, nil
}

// GetManufacturerName возвращает внешнее имя производителя
func (r *CatalogStorage) GetManufacturerName(ctx context.Context, manufacturerID int64) (string, error) {
	query := `
		SELECT COALESCE(NULLIF(external_name, ''), name)
		FROM catalog.manufacturers
		WHERE id = $1
	`

	var name string
	err := r.pool.QueryRow(ctx, query, manufacturerID).Scan(&name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("failed to get manufacturer name: %w", err)
	}

	return name, nil
}

// GetShippingCost возвращает настроенную стоимость доставки товара
// или nil, если доставка для товара не настроена
func (r *CatalogStorage) GetShippingCost(ctx context.Context, itemID int64) (*decimal.Decimal, error) {
	query := `
		SELECT cost
		FROM catalog.item_shipping_costs
		WHERE item_id = $1
	`

	var cost decimal.Decimal
	err := r.pool.QueryRow(ctx, query, itemID).Scan(&cost)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get shipping cost: %w", err)
	}

	return &cost, nil
}
