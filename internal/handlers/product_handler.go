package handlers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"tienda/internal/models"
	"tienda/internal/repositories"
	"tienda/internal/services"
	"tienda/internal/validation"
)

// Client-facing messages. Validation responses carry one entry per violated
// constraint; not-found and storage failures carry a single error string.
const (
	msgInvalidID           = "ID no valido"
	msgEmptyName           = "El nombre del producto no puede ir vacio"
	msgPriceNotNumeric     = "Valor no valido"
	msgEmptyPrice          = "El precio del producto no puede ir vacio"
	msgPriceNotPositive    = "Precio no valido"
	msgInvalidAvailability = "Debes de actualizar el estado del producto"
	msgProductNotFound     = "Producto no encontrado"
	msgProductDeleted      = "Producto eliminado"
	msgStorageFailure      = "Hubo un error"
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

// RegisterRoutes binds each product route to its rule set, gate and
// handler. The rule sets are fixed at startup; within a set, rules run in
// declaration order and every violation is collected.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	idRules := []validation.Rule{
		validation.IntParam("id", msgInvalidID),
	}
	bodyRules := []validation.Rule{
		validation.RequiredString("name", msgEmptyName),
		validation.Numeric("price", msgPriceNotNumeric),
		validation.NotEmpty("price", msgEmptyPrice),
		validation.Positive("price", msgPriceNotPositive),
	}
	replaceRules := append([]validation.Rule{}, idRules...)
	replaceRules = append(replaceRules, bodyRules...)
	replaceRules = append(replaceRules, validation.Boolean("availability", msgInvalidAvailability))

	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleGetProducts)
	productRoutes.Get("/:id", validation.Gate(idRules...), h.HandleGetProductByID)
	productRoutes.Post("/", validation.Gate(bodyRules...), h.HandleCreateProduct)
	productRoutes.Put("/:id", validation.Gate(replaceRules...), h.HandleUpdateProduct)
	productRoutes.Patch("/:id", validation.Gate(idRules...), h.HandleUpdateAvailability)
	productRoutes.Delete("/:id", validation.Gate(idRules...), h.HandleDeleteProduct)
}

// parseID reads the gate-validated id parameter. A negative id is well
// formed but can never match a row, since the storage layer only assigns
// positive ids; reporting false sends it down the not-found path.
func parseID(c *fiber.Ctx) (uint, bool) {
	id, _ := c.ParamsInt("id")
	if id < 0 {
		return 0, false
	}
	return uint(id), true
}

// HandleGetProducts retrieves all products, most expensive first.
func (h *ProductHandler) HandleGetProducts(c *fiber.Ctx) error {
	products, err := h.service.GetAllProducts()
	if err != nil {
		log.Printf("Error getting all products: %v", err)
		return h.storageFailure(c)
	}
	return c.JSON(fiber.Map{"data": products})
}

// HandleGetProductByID retrieves a single product by its ID.
func (h *ProductHandler) HandleGetProductByID(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return h.productNotFound(c)
	}
	product, err := h.service.GetProductByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrProductNotFound) {
			return h.productNotFound(c)
		}
		log.Printf("Error getting product by ID %d: %v", id, err)
		return h.storageFailure(c)
	}
	return c.JSON(fiber.Map{"data": product})
}

// HandleCreateProduct creates a new product. The storage layer assigns the
// ID and the product starts out available.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	req := validation.FromCtx(c)
	product := models.Product{
		Name:  req.String("name"),
		Price: req.Float("price"),
	}
	if err := h.service.CreateProduct(&product); err != nil {
		log.Printf("Error creating product: %v", err)
		return h.storageFailure(c)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": product})
}

// HandleUpdateProduct replaces every mutable field of an existing product.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return h.productNotFound(c)
	}
	req := validation.FromCtx(c)
	product, err := h.service.ReplaceProduct(id, req.String("name"), req.Float("price"), req.Bool("availability"))
	if err != nil {
		if errors.Is(err, repositories.ErrProductNotFound) {
			return h.productNotFound(c)
		}
		log.Printf("Error updating product %d: %v", id, err)
		return h.storageFailure(c)
	}
	return c.JSON(fiber.Map{"data": product})
}

// HandleUpdateAvailability flips the availability flag of an existing
// product.
func (h *ProductHandler) HandleUpdateAvailability(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return h.productNotFound(c)
	}
	product, err := h.service.ToggleAvailability(id)
	if err != nil {
		if errors.Is(err, repositories.ErrProductNotFound) {
			return h.productNotFound(c)
		}
		log.Printf("Error toggling availability for product %d: %v", id, err)
		return h.storageFailure(c)
	}
	return c.JSON(fiber.Map{"data": product})
}

// HandleDeleteProduct removes an existing product. Deleting the same ID
// again yields a 404 since the row no longer exists.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return h.productNotFound(c)
	}
	if err := h.service.DeleteProduct(id); err != nil {
		if errors.Is(err, repositories.ErrProductNotFound) {
			return h.productNotFound(c)
		}
		log.Printf("Error deleting product %d: %v", id, err)
		return h.storageFailure(c)
	}
	return c.JSON(fiber.Map{"data": msgProductDeleted})
}

func (h *ProductHandler) productNotFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": msgProductNotFound})
}

// storageFailure terminates the request with a generic 500. Storage errors
// are never silently dropped.
func (h *ProductHandler) storageFailure(c *fiber.Ctx) error {
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": msgStorageFailure})
}
