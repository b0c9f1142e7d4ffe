package siigo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"siigosync/internal/config"
	"siigosync/internal/domain/product"
)

const (
	productsPath  = "/v1/products"
	inventoryPath = "/inventory/"
)

// remoteProduct товар в формате Siigo
type remoteProduct struct {
	ID         remoteID `json:"id,omitempty"`
	Code       string   `json:"code"`
	Name       string   `json:"name"`
	PriceSales amount   `json:"price_sales"`
	Stock      int      `json:"stock"`
}

func (r remoteProduct) toDomain() product.Product {
	return product.Product{
		Code:     r.Code,
		Name:     r.Name,
		Price:    r.PriceSales.Decimal,
		Stock:    r.Stock,
		RemoteID: string(r.ID),
	}
}

func fromDomain(p product.Product) remoteProduct {
	return remoteProduct{
		Code:       p.Code,
		Name:       p.Name,
		PriceSales: amount{p.Price},
		Stock:      p.Stock,
	}
}

type inventoryBody struct {
	Code  string `json:"code,omitempty"`
	Stock int    `json:"stock"`
}

// ListProducts весь каталог Siigo. Формат ответа (список или конверт
// с results) определяется настройкой SIIGO_PRODUCTS_RESPONSE.
func (c *Client) ListProducts(ctx context.Context) ([]product.Product, error) {
	var raw json.RawMessage
	if err := c.Call(ctx, http.MethodGet, productsPath, nil, &raw); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	remote, err := decodeProductList(raw, c.productsResponse)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	products := make([]product.Product, 0, len(remote))
	for _, r := range remote {
		products = append(products, r.toDomain())
	}

	return products, nil
}

// FindProductByCode линейный поиск по полному каталогу; nil если не найден.
// Серверного фильтра по коду нет.
func (c *Client) FindProductByCode(ctx context.Context, code string) (*product.Product, error) {
	products, err := c.ListProducts(ctx)
	if err != nil {
		return nil, err
	}

	for i := range products {
		if products[i].Code == code {
			return &products[i], nil
		}
	}

	return nil, nil
}

func (c *Client) CreateProduct(ctx context.Context, p product.Product) (*product.Product, error) {
	var created remoteProduct
	if err := c.Call(ctx, http.MethodPost, productsPath, fromDomain(p), &created); err != nil {
		return nil, fmt.Errorf("create product %s: %w", p.Code, err)
	}

	res := created.toDomain()
	if res.Code == "" {
		res.Code = p.Code
	}
	return &res, nil
}

func (c *Client) UpdateProduct(ctx context.Context, id string, p product.Product) (*product.Product, error) {
	var updated remoteProduct
	if err := c.Call(ctx, http.MethodPut, productsPath+"/"+url.PathEscape(id), fromDomain(p), &updated); err != nil {
		return nil, fmt.Errorf("update product %s: %w", id, err)
	}

	res := updated.toDomain()
	if res.RemoteID == "" {
		res.RemoteID = id
	}
	return &res, nil
}

// UpdateInventory выставляет остаток товара в Siigo. Путь ключуется
// бизнес-кодом, а не идентификатором Siigo.
func (c *Client) UpdateInventory(ctx context.Context, code string, stock int) error {
	if code == "" {
		return product.ErrEmptyCode
	}
	if err := c.Call(ctx, http.MethodPut, inventoryPath+url.PathEscape(code), inventoryBody{Stock: stock}, nil); err != nil {
		return fmt.Errorf("update inventory %s: %w", code, err)
	}
	return nil
}

// GetInventory текущий остаток товара в Siigo
func (c *Client) GetInventory(ctx context.Context, code string) (int, error) {
	if code == "" {
		return 0, product.ErrEmptyCode
	}

	var inv inventoryBody
	if err := c.Call(ctx, http.MethodGet, inventoryPath+url.PathEscape(code), nil, &inv); err != nil {
		return 0, fmt.Errorf("get inventory %s: %w", code, err)
	}
	return inv.Stock, nil
}

func decodeProductList(raw []byte, shape string) ([]remoteProduct, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}

	if shape == config.ProductsResponseAuto {
		shape = config.ProductsResponseEnvelope
		if trimmed[0] == '[' {
			shape = config.ProductsResponseList
		}
	}

	switch shape {
	case config.ProductsResponseList:
		if trimmed[0] != '[' {
			return nil, fmt.Errorf("%w: expected product list", ErrUnexpectedPayload)
		}
		var list []remoteProduct
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnexpectedPayload, err)
		}
		return list, nil
	case config.ProductsResponseEnvelope:
		if trimmed[0] != '{' {
			return nil, fmt.Errorf("%w: expected results envelope", ErrUnexpectedPayload)
		}
		var env struct {
			Results []remoteProduct `json:"results"`
		}
		if err := json.Unmarshal(trimmed, &env); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnexpectedPayload, err)
		}
		return env.Results, nil
	default:
		return nil, fmt.Errorf("unknown products response shape %q", shape)
	}
}
