package productrepo

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/lib/pq"

	"gocatalog/internal/domain"
	"gocatalog/internal/errors"
	"gocatalog/internal/pkg/cache"
)

// Chave de cache para produtos individuais.
const productCacheKey = "product:%s"

// ProductRepository persiste o agregado Product (produto, variantes, linhas
// de combo e estoque/preço por armazém) em PostgreSQL, com cache-aside em Redis.
type ProductRepository struct {
	DB        *sql.DB
	Cache     cache.Client
	DBTimeout time.Duration
	CacheTTL  time.Duration
}

// NewProductRepository cria e retorna uma nova instância do Repositório.
func NewProductRepository(db *sql.DB, cacheClient cache.Client, dbTimeout, cacheTTL time.Duration) *ProductRepository {
	return &ProductRepository{
		DB:        db,
		Cache:     cacheClient,
		DBTimeout: dbTimeout,
		CacheTTL:  cacheTTL,
	}
}

const insertProductSQL = `
	INSERT INTO products (
		id, type, name, code, barcode_symbology, file,
		brand_id, category_id, unit_id, sale_unit_id, purchase_unit_id, tax_id,
		cost, profit_margin, price, wholesale_price, daily_sale_objective, alert_quantity, tax_method,
		warranty, warranty_type, guarantee, guarantee_type,
		product_details, qty, images, product_tags,
		is_variant, is_batch, is_imei, is_embeded, is_initial_stock, is_diff_price,
		featured, promotion, is_active, is_sync_disable, is_online, is_addon, in_stock,
		promotion_price, starting_date, last_date,
		meta_title, meta_description, related_products,
		created_at, updated_at
	) VALUES (
		$1,$2,$3,$4,$5,$6,
		$7,$8,$9,$10,$11,$12,
		$13,$14,$15,$16,$17,$18,$19,
		$20,$21,$22,$23,
		$24,$25,$26,$27,
		$28,$29,$30,$31,$32,$33,
		$34,$35,$36,$37,$38,$39,$40,
		$41,$42,$43,
		$44,$45,$46,
		$47,$48
	)`

// Save persiste um novo Produto e todas as suas sub-entidades em uma única transação.
func (r *ProductRepository) Save(ctx context.Context, product domain.Product) (domain.Product, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	tx, err := r.DB.BeginTx(ctxTimeout, nil)
	if err != nil {
		return domain.Product{}, errors.NewDBError("Falha ao iniciar transação", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	product.CreatedAt = time.Now()
	product.UpdatedAt = product.CreatedAt

	if err = r.insertProductRow(ctxTimeout, tx, product); err != nil {
		return domain.Product{}, err
	}
	if err = r.insertChildren(ctxTimeout, tx, product); err != nil {
		return domain.Product{}, err
	}

	if err = tx.Commit(); err != nil {
		return domain.Product{}, errors.NewDBError("Falha ao confirmar transação", err)
	}

	return product, nil
}

func (r *ProductRepository) insertProductRow(ctx context.Context, tx *sql.Tx, p domain.Product) error {
	_, err := tx.ExecContext(ctx, insertProductSQL,
		p.ID, p.Type, p.Name, p.Code, p.BarcodeSymbology, nullIfEmpty(p.File),
		nullIfEmpty(p.BrandID), p.CategoryID, nullIfEmpty(p.UnitID), nullIfEmpty(p.SaleUnitID), nullIfEmpty(p.PurchaseUnitID), nullIfEmpty(p.TaxID),
		p.Cost, p.ProfitMargin, p.Price, p.WholesalePrice, p.DailySaleObjective, p.AlertQuantity, p.TaxMethod,
		p.Warranty, nullIfEmpty(string(p.WarrantyUnit)), p.Guarantee, nullIfEmpty(string(p.GuaranteeUnit)),
		p.ProductDetails, p.Qty, pq.Array(p.Images), pq.Array(p.ProductTags),
		p.IsVariant, p.IsBatch, p.IsImei, p.IsEmbedded, p.IsInitialStock, p.IsDiffPrice,
		p.Featured, p.Promotion, p.IsActive, p.IsSyncDisable, p.IsOnline, p.IsAddon, p.InStock,
		p.PromotionPrice, p.StartingDate, p.LastDate,
		p.MetaTitle, p.MetaDescription, pq.Array(p.RelatedProducts),
		p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return errors.NewDBError("Falha ao inserir produto", err)
	}
	return nil
}

// insertChildren grava variantes, linhas de combo, estoque inicial e preços
// diferenciados dentro da transação do agregado.
func (r *ProductRepository) insertChildren(ctx context.Context, tx *sql.Tx, p domain.Product) error {
	const variantSQL = `
		INSERT INTO product_variants (id, product_id, option, value, item_code, additional_cost, additional_price)
		VALUES ($1,$2,$3,$4,$5,$6,$7)`
	for _, v := range p.Variants {
		if _, err := tx.ExecContext(ctx, variantSQL,
			v.ID, p.ID, v.Option, v.Value, v.ItemCode, v.AdditionalCost, v.AdditionalPrice,
		); err != nil {
			return errors.NewDBError("Falha ao inserir variante", err)
		}
	}

	const comboSQL = `
		INSERT INTO combo_lines (combo_id, position, product_id, variant_id, product_name, product_code,
			wastage_percent, quantity, unit_id, unit_cost, unit_price, subtotal)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)`
	for i, line := range p.ComboProducts {
		if _, err := tx.ExecContext(ctx, comboSQL,
			p.ID, i, line.ProductID, nullIfEmpty(line.VariantID), line.ProductName, line.ProductCode,
			line.WastagePercent, line.Quantity, nullIfEmpty(line.UnitID), line.UnitCost, line.UnitPrice, line.Subtotal,
		); err != nil {
			return errors.NewDBError("Falha ao inserir linha de combo", err)
		}
	}

	// Estoque inicial e preço diferenciado compartilham a tabela stock_levels.
	const stockSQL = `
		INSERT INTO stock_levels (id, product_id, warehouse_id, quantity, version, created_at, updated_at)
		VALUES (gen_random_uuid(), $1, $2, $3, 1, now(), now())
		ON CONFLICT (product_id, warehouse_id)
		DO UPDATE SET quantity = EXCLUDED.quantity, version = stock_levels.version + 1, updated_at = now()`
	for _, ws := range p.InitialStock {
		if _, err := tx.ExecContext(ctx, stockSQL, p.ID, ws.WarehouseID, ws.Quantity); err != nil {
			return errors.NewDBError("Falha ao inserir estoque inicial", err)
		}
	}

	const diffPriceSQL = `
		INSERT INTO stock_levels (id, product_id, warehouse_id, quantity, price, version, created_at, updated_at)
		VALUES (gen_random_uuid(), $1, $2, 0, $3, 1, now(), now())
		ON CONFLICT (product_id, warehouse_id)
		DO UPDATE SET price = EXCLUDED.price, version = stock_levels.version + 1, updated_at = now()`
	for _, wp := range p.DiffPrices {
		if _, err := tx.ExecContext(ctx, diffPriceSQL, p.ID, wp.WarehouseID, wp.Price); err != nil {
			return errors.NewDBError("Falha ao inserir preço diferenciado", err)
		}
	}

	return nil
}

const selectProductSQL = `
	SELECT id, type, name, code, barcode_symbology, COALESCE(file, ''),
		COALESCE(brand_id::text, ''), category_id, COALESCE(unit_id::text, ''), COALESCE(sale_unit_id::text, ''),
		COALESCE(purchase_unit_id::text, ''), COALESCE(tax_id::text, ''),
		cost, profit_margin, price, wholesale_price, daily_sale_objective, alert_quantity, tax_method,
		warranty, COALESCE(warranty_type, ''), guarantee, COALESCE(guarantee_type, ''),
		product_details, qty, images, product_tags,
		is_variant, is_batch, is_imei, is_embeded, is_initial_stock, is_diff_price,
		featured, promotion, is_active, is_sync_disable, is_online, is_addon, in_stock,
		promotion_price, starting_date, last_date,
		meta_title, meta_description, related_products,
		created_at, updated_at
	FROM products`

// FindByID busca um produto pelo ID, utilizando a estratégia Cache-Aside.
func (r *ProductRepository) FindByID(ctx context.Context, id string) (domain.Product, error) {
	ctxGo, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	key := fmt.Sprintf(productCacheKey, id)
	var product domain.Product

	// Cache HIT devolve direto; falha de desserialização cai para o DB.
	cachedData, err := r.Cache.Get(ctxGo, key)
	if err == nil {
		if json.Unmarshal([]byte(cachedData), &product) == nil {
			return product, nil
		}
	}

	row := r.DB.QueryRowContext(ctxGo, selectProductSQL+` WHERE id = $1`, id)
	product, err = scanProduct(row)
	if err == sql.ErrNoRows {
		return domain.Product{}, errors.NewNotFoundError(fmt.Sprintf("Produto com ID %s não existe na base de dados.", id))
	}
	if err != nil {
		return domain.Product{}, errors.NewDBError("Falha ao buscar produto no DB", err)
	}

	if err := r.loadChildren(ctxGo, &product); err != nil {
		return domain.Product{}, err
	}

	// Popula o cache para futuras requisições.
	if productJSON, marshalErr := json.Marshal(product); marshalErr == nil {
		r.Cache.Set(ctxGo, key, productJSON, r.CacheTTL)
	}

	return product, nil
}

// loadChildren carrega variantes e linhas de combo do produto.
func (r *ProductRepository) loadChildren(ctx context.Context, p *domain.Product) error {
	const variantSQL = `
		SELECT id, product_id, option, value, item_code, additional_cost, additional_price
		FROM product_variants WHERE product_id = $1 ORDER BY item_code`
	rows, err := r.DB.QueryContext(ctx, variantSQL, p.ID)
	if err != nil {
		return errors.NewDBError("Falha ao buscar variantes do produto", err)
	}
	defer rows.Close()
	for rows.Next() {
		var v domain.ProductVariant
		if err := rows.Scan(&v.ID, &v.ProductID, &v.Option, &v.Value, &v.ItemCode, &v.AdditionalCost, &v.AdditionalPrice); err != nil {
			return errors.NewDBError("Falha ao mapear variante", err)
		}
		p.Variants = append(p.Variants, v)
	}
	if err := rows.Err(); err != nil {
		return errors.NewDBError("Falha ao iterar variantes", err)
	}

	const comboSQL = `
		SELECT product_id, COALESCE(variant_id::text, ''), product_name, product_code,
			wastage_percent, quantity, COALESCE(unit_id::text, ''), unit_cost, unit_price, subtotal
		FROM combo_lines WHERE combo_id = $1 ORDER BY position`
	comboRows, err := r.DB.QueryContext(ctx, comboSQL, p.ID)
	if err != nil {
		return errors.NewDBError("Falha ao buscar linhas de combo", err)
	}
	defer comboRows.Close()
	for comboRows.Next() {
		var line domain.ComboLine
		if err := comboRows.Scan(&line.ProductID, &line.VariantID, &line.ProductName, &line.ProductCode,
			&line.WastagePercent, &line.Quantity, &line.UnitID, &line.UnitCost, &line.UnitPrice, &line.Subtotal); err != nil {
			return errors.NewDBError("Falha ao mapear linha de combo", err)
		}
		p.ComboProducts = append(p.ComboProducts, line)
	}
	return comboRows.Err()
}

// FindAll lista produtos aplicando filtros e paginação. As sub-entidades não
// são carregadas na listagem.
func (r *ProductRepository) FindAll(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	ctxGo, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := selectProductSQL + ` WHERE 1=1`
	args := []interface{}{}
	argPos := 1

	if filter.Name != "" {
		query += fmt.Sprintf(` AND name ILIKE $%d`, argPos)
		args = append(args, "%"+filter.Name+"%")
		argPos++
	}
	if filter.Code != "" {
		query += fmt.Sprintf(` AND code = $%d`, argPos)
		args = append(args, filter.Code)
		argPos++
	}
	if filter.CategoryID != "" {
		query += fmt.Sprintf(` AND category_id = $%d`, argPos)
		args = append(args, filter.CategoryID)
		argPos++
	}
	if filter.ActiveOnly {
		query += ` AND is_active = true`
	}

	query += fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, argPos, argPos+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := r.DB.QueryContext(ctxGo, query, args...)
	if err != nil {
		return nil, errors.NewDBError("Falha ao listar produtos", err)
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, errors.NewDBError("Falha ao mapear produto da listagem", err)
		}
		products = append(products, product)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewDBError("Falha ao iterar produtos", err)
	}
	return products, nil
}

const updateProductSQL = `
	UPDATE products SET
		type = $2, name = $3, code = $4, barcode_symbology = $5, file = $6,
		brand_id = $7, category_id = $8, unit_id = $9, sale_unit_id = $10, purchase_unit_id = $11, tax_id = $12,
		cost = $13, profit_margin = $14, price = $15, wholesale_price = $16, daily_sale_objective = $17,
		alert_quantity = $18, tax_method = $19,
		warranty = $20, warranty_type = $21, guarantee = $22, guarantee_type = $23,
		product_details = $24, qty = $25, images = $26, product_tags = $27,
		is_variant = $28, is_batch = $29, is_imei = $30, is_embeded = $31, is_initial_stock = $32, is_diff_price = $33,
		featured = $34, promotion = $35, is_active = $36, is_sync_disable = $37, is_online = $38, is_addon = $39, in_stock = $40,
		promotion_price = $41, starting_date = $42, last_date = $43,
		meta_title = $44, meta_description = $45, related_products = $46,
		updated_at = $47
	WHERE id = $1`

// Update regrava o produto e substitui as sub-entidades (exceto estoque, que
// é acumulativo) em uma única transação. A entrada de cache é invalidada.
func (r *ProductRepository) Update(ctx context.Context, product domain.Product) (domain.Product, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	tx, err := r.DB.BeginTx(ctxTimeout, nil)
	if err != nil {
		return domain.Product{}, errors.NewDBError("Falha ao iniciar transação", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	product.UpdatedAt = time.Now()

	var result sql.Result
	result, err = tx.ExecContext(ctxTimeout, updateProductSQL,
		product.ID, product.Type, product.Name, product.Code, product.BarcodeSymbology, nullIfEmpty(product.File),
		nullIfEmpty(product.BrandID), product.CategoryID, nullIfEmpty(product.UnitID), nullIfEmpty(product.SaleUnitID),
		nullIfEmpty(product.PurchaseUnitID), nullIfEmpty(product.TaxID),
		product.Cost, product.ProfitMargin, product.Price, product.WholesalePrice, product.DailySaleObjective,
		product.AlertQuantity, product.TaxMethod,
		product.Warranty, nullIfEmpty(string(product.WarrantyUnit)), product.Guarantee, nullIfEmpty(string(product.GuaranteeUnit)),
		product.ProductDetails, product.Qty, pq.Array(product.Images), pq.Array(product.ProductTags),
		product.IsVariant, product.IsBatch, product.IsImei, product.IsEmbedded, product.IsInitialStock, product.IsDiffPrice,
		product.Featured, product.Promotion, product.IsActive, product.IsSyncDisable, product.IsOnline, product.IsAddon, product.InStock,
		product.PromotionPrice, product.StartingDate, product.LastDate,
		product.MetaTitle, product.MetaDescription, pq.Array(product.RelatedProducts),
		product.UpdatedAt,
	)
	if err != nil {
		return domain.Product{}, errors.NewDBError("Falha ao atualizar produto", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		err = sql.ErrNoRows
		return domain.Product{}, errors.NewNotFoundError(fmt.Sprintf("Produto com ID %s não existe na base de dados.", product.ID))
	}

	// Variantes e linhas de combo são substituídas por completo.
	if _, err = tx.ExecContext(ctxTimeout, `DELETE FROM product_variants WHERE product_id = $1`, product.ID); err != nil {
		return domain.Product{}, errors.NewDBError("Falha ao limpar variantes antigas", err)
	}
	if _, err = tx.ExecContext(ctxTimeout, `DELETE FROM combo_lines WHERE combo_id = $1`, product.ID); err != nil {
		return domain.Product{}, errors.NewDBError("Falha ao limpar linhas de combo antigas", err)
	}
	if err = r.insertChildren(ctxTimeout, tx, product); err != nil {
		return domain.Product{}, err
	}

	if err = tx.Commit(); err != nil {
		return domain.Product{}, errors.NewDBError("Falha ao confirmar transação", err)
	}

	r.Cache.Delete(ctxTimeout, fmt.Sprintf(productCacheKey, product.ID))
	return product, nil
}

// Delete remove o produto. As sub-entidades caem por ON DELETE CASCADE.
func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	result, err := r.DB.ExecContext(ctxTimeout, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return errors.NewDBError("Falha ao deletar produto", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("Produto com ID %s não existe na base de dados.", id))
	}

	r.Cache.Delete(ctxTimeout, fmt.Sprintf(productCacheKey, id))
	return nil
}

// rowScanner cobre *sql.Row e *sql.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProduct(row rowScanner) (domain.Product, error) {
	var p domain.Product
	var warrantyUnit, guaranteeUnit string
	err := row.Scan(
		&p.ID, &p.Type, &p.Name, &p.Code, &p.BarcodeSymbology, &p.File,
		&p.BrandID, &p.CategoryID, &p.UnitID, &p.SaleUnitID, &p.PurchaseUnitID, &p.TaxID,
		&p.Cost, &p.ProfitMargin, &p.Price, &p.WholesalePrice, &p.DailySaleObjective, &p.AlertQuantity, &p.TaxMethod,
		&p.Warranty, &warrantyUnit, &p.Guarantee, &guaranteeUnit,
		&p.ProductDetails, &p.Qty, pq.Array(&p.Images), pq.Array(&p.ProductTags),
		&p.IsVariant, &p.IsBatch, &p.IsImei, &p.IsEmbedded, &p.IsInitialStock, &p.IsDiffPrice,
		&p.Featured, &p.Promotion, &p.IsActive, &p.IsSyncDisable, &p.IsOnline, &p.IsAddon, &p.InStock,
		&p.PromotionPrice, &p.StartingDate, &p.LastDate,
		&p.MetaTitle, &p.MetaDescription, pq.Array(&p.RelatedProducts),
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return domain.Product{}, err
	}
	p.WarrantyUnit = domain.WarrantyUnit(warrantyUnit)
	p.GuaranteeUnit = domain.WarrantyUnit(guaranteeUnit)
	return p, nil
}

// nullIfEmpty converte string vazia em NULL para colunas opcionais com FK.
func nullIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
