package orderControllers

import (
	"time"

	"github.com/guimac3do/chica-y-nino-sub000/models"
)

// OrderItemView is a line item with its catalog data resolved at read time.
// Preco comes from the live ProductSize, so the displayed total follows
// price changes made after the order was placed.
type OrderItemView struct {
	ID              uint                 `json:"id"`
	ProductID       uint                 `json:"product_id"`
	ProductSizeID   uint                 `json:"product_size_id"`
	Produto         string               `json:"produto"`
	Tamanho         string               `json:"tamanho"`
	Preco           float64              `json:"preco"`
	Quantidade      int                  `json:"quantidade"`
	Cor             string               `json:"cor"`
	Subtotal        float64              `json:"subtotal"`
	Imagem          string               `json:"imagem"`
	StatusPagamento models.PaymentStatus `json:"status_pagamento"`
	StatusEstoque   models.StockStatus   `json:"status_estoque"`
}

type CustomerOrderView struct {
	ID          uint            `json:"id"`
	OrderRef    string          `json:"order_ref"`
	Telefone    string          `json:"telefone"`
	Observacoes string          `json:"observacoes"`
	Status      string          `json:"status"`
	Total       float64         `json:"total"`
	Items       []OrderItemView `json:"items"`
	CreatedAt   time.Time       `json:"created_at"`
}

type AdminOrderItemView struct {
	OrderItemView
	Processado   bool       `json:"processado"`
	ProcessadoAt *time.Time `json:"processado_at,omitempty"`
}

type AdminOrderView struct {
	ID          uint                 `json:"id"`
	OrderRef    string               `json:"order_ref"`
	Cliente     string               `json:"cliente"`
	CustomerID  *uint                `json:"customer_id"`
	Telefone    string               `json:"telefone"`
	Observacoes string               `json:"observacoes"`
	Lembretes   int                  `json:"lembretes"`
	Status      string               `json:"status"`
	Total       float64              `json:"total"`
	Items       []AdminOrderItemView `json:"items"`
	CreatedAt   time.Time            `json:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at"`
}

func buildItemView(item models.OrderItem) OrderItemView {
	view := OrderItemView{
		ID:              item.ID,
		ProductID:       item.ProductID,
		ProductSizeID:   item.ProductSizeID,
		Quantidade:      item.Quantidade,
		Cor:             item.Cor,
		StatusPagamento: item.StatusPagamento,
		StatusEstoque:   item.StatusEstoque,
	}
	if item.Product != nil {
		view.Produto = item.Product.Nome
		view.Imagem = item.Product.ImageFor(item.Cor)
	}
	if item.Size != nil {
		view.Tamanho = item.Size.Tamanho
		view.Preco = item.Size.Preco
	}
	view.Subtotal = view.Preco * float64(item.Quantidade)
	return view
}

// orderTotal sums quantity x live price over the non-cancelled line items.
func orderTotal(items []models.OrderItem) float64 {
	var total float64
	for _, item := range items {
		if item.StatusPagamento == models.PaymentCancelled {
			continue
		}
		if item.Size != nil {
			total += item.Size.Preco * float64(item.Quantidade)
		}
	}
	return total
}

// derivedStatus is "cancelado" only when every line item is cancelled; any
// live item keeps the order "pendente". There is no order-level "paid".
func derivedStatus(items []models.OrderItem) string {
	if len(items) == 0 {
		return "pendente"
	}
	for _, item := range items {
		if item.StatusPagamento != models.PaymentCancelled {
			return "pendente"
		}
	}
	return "cancelado"
}

func buildCustomerOrderView(order models.Order) CustomerOrderView {
	items := make([]OrderItemView, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, buildItemView(item))
	}
	return CustomerOrderView{
		ID:          order.ID,
		OrderRef:    order.OrderRef,
		Telefone:    order.Telefone,
		Observacoes: order.Observacoes,
		Status:      derivedStatus(order.Items),
		Total:       orderTotal(order.Items),
		Items:       items,
		CreatedAt:   order.CreatedAt,
	}
}

func buildAdminOrderView(order models.Order) AdminOrderView {
	items := make([]AdminOrderItemView, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, AdminOrderItemView{
			OrderItemView: buildItemView(item),
			Processado:    item.Processado,
			ProcessadoAt:  item.ProcessadoAt,
		})
	}
	cliente := "unknown"
	if order.Customer != nil {
		cliente = order.Customer.Nome
	}
	return AdminOrderView{
		ID:          order.ID,
		OrderRef:    order.OrderRef,
		Cliente:     cliente,
		CustomerID:  order.CustomerID,
		Telefone:    order.Telefone,
		Observacoes: order.Observacoes,
		Lembretes:   order.Lembretes,
		Status:      derivedStatus(order.Items),
		Total:       orderTotal(order.Items),
		Items:       items,
		CreatedAt:   order.CreatedAt,
		UpdatedAt:   order.UpdatedAt,
	}
}
