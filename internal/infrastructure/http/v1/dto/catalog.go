package dto

import (
	"negocio/internal/core/types"
	"negocio/internal/domain/catalogs/client"
	"negocio/internal/domain/catalogs/product"
	"negocio/internal/domain/catalogs/supplier"
)

// --- Products ---

// ProductRequest creates or updates a product. Prices are minor units.
type ProductRequest struct {
	Name       string `json:"name" binding:"required"`
	Code       string `json:"code"`
	UnitPrice  int64  `json:"unitPrice" binding:"min=0"`
	Stock      int64  `json:"stock" binding:"min=0"`
	MinStock   int64  `json:"minStock" binding:"min=0"`
	SupplierID string `json:"supplierId"`
}

// ToProduct maps the request onto a product.
func (r ProductRequest) ToProduct(p *product.Product) {
	p.Name = r.Name
	p.Code = r.Code
	p.UnitPrice = types.MinorUnits(r.UnitPrice)
	p.Stock = r.Stock
	p.MinStock = r.MinStock
	p.SupplierID = r.SupplierID
}

// --- Clients ---

// ClientRequest creates or updates a client.
type ClientRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Notes   string `json:"notes"`
}

// ToClient maps the request onto a client.
func (r ClientRequest) ToClient(c *client.Client) {
	c.Name = r.Name
	c.Email = r.Email
	c.Phone = r.Phone
	c.Address = r.Address
	c.Notes = r.Notes
}

// --- Suppliers ---

// SupplierRequest creates or updates a supplier.
type SupplierRequest struct {
	Name    string `json:"name" binding:"required"`
	Contact string `json:"contact"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// ToSupplier maps the request onto a supplier.
func (r SupplierRequest) ToSupplier(s *supplier.Supplier) {
	s.Name = r.Name
	s.Contact = r.Contact
	s.Email = r.Email
	s.Phone = r.Phone
	s.Address = r.Address
}
