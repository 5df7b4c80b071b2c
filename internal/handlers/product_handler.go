package handlers

import (
	"errors"
	"log"
	"strconv"

	"github.com/IleanaLopez91/dashboardPERN/internal/middleware"
	"github.com/IleanaLopez91/dashboardPERN/internal/models"
	"github.com/IleanaLopez91/dashboardPERN/internal/repositories"
	"github.com/IleanaLopez91/dashboardPERN/internal/services"
	"github.com/IleanaLopez91/dashboardPERN/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// Client-facing messages. These are part of the API contract.
const (
	msgNameRequired    = "El nombre no puede estar vacio"
	msgPriceRequired   = "El precio no puede estar vacio"
	msgPriceNumeric    = "El precio debe ser un numero"
	msgPricePositive   = "El precio debe ser un numero positivo"
	msgAvailability    = "Valor para disponibilidad no valido"
	msgInvalidID       = "ID no valido"
	msgProductNotFound = "Producto no encontrado"
	msgProductDeleted  = "Producto eliminado"
	msgServerError     = "Error interno del servidor"
)

// ProductHandler handles HTTP requests for products.
type ProductHandler struct {
	service *services.ProductService
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService) *ProductHandler {
	return &ProductHandler{
		service: service,
	}
}

// RegisterRoutes binds the product routes. Each route runs its
// validation chains first (params before body, body fields in
// declaration order), then the input-error middleware, then the
// handler.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	products := router.Group("/products")

	products.Get("/", h.HandleGetProducts)

	products.Get("/:id",
		middleware.Validate(idRule()),
		middleware.HandleInputErrors,
		h.HandleGetProductByID)

	products.Post("/",
		middleware.Validate(bodyRules()...),
		middleware.HandleInputErrors,
		h.HandleCreateProduct)

	products.Put("/:id",
		middleware.Validate(append([]*validation.Chain{idRule()}, fullUpdateRules()...)...),
		middleware.HandleInputErrors,
		h.HandleUpdateProduct)

	products.Patch("/:id",
		middleware.Validate(idRule()),
		middleware.HandleInputErrors,
		h.HandleToggleAvailability)

	products.Delete("/:id",
		middleware.Validate(idRule()),
		middleware.HandleInputErrors,
		h.HandleDeleteProduct)
}

func idRule() *validation.Chain {
	return validation.Param("id").IsInt().WithMessage(msgInvalidID)
}

func bodyRules() []*validation.Chain {
	return []*validation.Chain{
		validation.Body("name").
			NotEmpty().WithMessage(msgNameRequired),
		validation.Body("price").
			NotEmpty().WithMessage(msgPriceRequired).
			IsNumeric().WithMessage(msgPriceNumeric).
			Custom(priceIsPositive).WithMessage(msgPricePositive),
	}
}

func fullUpdateRules() []*validation.Chain {
	return append(bodyRules(),
		validation.Body("availability").
			IsBoolean().WithMessage(msgAvailability),
	)
}

func priceIsPositive(v validation.Value) bool {
	price, ok := validation.ToFloat(v.Raw)
	return ok && price > 0
}

// HandleGetProducts returns the product list projection. An empty
// table yields an empty array, never an error.
func (h *ProductHandler) HandleGetProducts(c *fiber.Ctx) error {
	products, err := h.service.GetAllProducts()
	if err != nil {
		return h.respondStoreError(c, "get products", err)
	}
	return c.JSON(fiber.Map{"data": products})
}

// HandleGetProductByID returns a single product by its id.
func (h *ProductHandler) HandleGetProductByID(c *fiber.Ctx) error {
	product, err := h.service.GetProductByID(paramID(c))
	if err != nil {
		return h.respondStoreError(c, "get product", err)
	}
	return c.JSON(fiber.Map{"data": product})
}

// HandleCreateProduct inserts a new product built from the validated
// body. Availability defaults to true unless the body carries a
// boolean; unknown extra fields are ignored.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	body := requestBody(c)

	product := models.Product{
		Name:         validation.ToString(body["name"]),
		Availability: true,
	}
	if price, ok := validation.ToFloat(body["price"]); ok {
		product.Price = price
	}
	if availability, ok := validation.ToBool(body["availability"]); ok {
		product.Availability = availability
	}

	if err := h.service.CreateProduct(&product); err != nil {
		return h.respondStoreError(c, "create product", err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": product})
}

// HandleUpdateProduct overwrites all mutable fields of an existing
// product with the validated body values.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	body := requestBody(c)

	name := validation.ToString(body["name"])
	price, _ := validation.ToFloat(body["price"])
	availability, _ := validation.ToBool(body["availability"])

	product, err := h.service.UpdateProduct(paramID(c), name, price, availability)
	if err != nil {
		return h.respondStoreError(c, "update product", err)
	}
	return c.JSON(fiber.Map{"data": product})
}

// HandleToggleAvailability flips the availability flag. The request
// body is not consulted.
func (h *ProductHandler) HandleToggleAvailability(c *fiber.Ctx) error {
	product, err := h.service.ToggleAvailability(paramID(c))
	if err != nil {
		return h.respondStoreError(c, "toggle availability", err)
	}
	return c.JSON(fiber.Map{"data": product})
}

// HandleDeleteProduct permanently removes a product.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	if err := h.service.DeleteProduct(paramID(c)); err != nil {
		return h.respondStoreError(c, "delete product", err)
	}
	return c.JSON(fiber.Map{"data": msgProductDeleted})
}

// respondStoreError maps a repository failure to a response. Not-found
// becomes a 404; everything else is logged with the request id and
// answered with a generic 500 so no request ends without a response.
func (h *ProductHandler) respondStoreError(c *fiber.Ctx, op string, err error) error {
	if errors.Is(err, repositories.ErrProductNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": msgProductNotFound,
		})
	}
	requestID, _ := c.Locals(middleware.LocalsRequestID).(string)
	log.Printf("[%s] %s: %v", requestID, op, err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": msgServerError,
	})
}

// paramID returns the id path parameter. The validation chain has
// already guaranteed it is a positive integer.
func paramID(c *fiber.Ctx) uint {
	id, _ := strconv.ParseUint(c.Params("id"), 10, 64)
	return uint(id)
}

// requestBody returns the JSON body decoded by the validation
// middleware.
func requestBody(c *fiber.Ctx) map[string]any {
	body, _ := c.Locals(middleware.LocalsBody).(map[string]any)
	if body == nil {
		body = map[string]any{}
	}
	return body
}
