package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"pizzeria/internal/domain/model"
	"pizzeria/internal/domain/pricing"
	repo "pizzeria/internal/repository"
)

// CatalogPageSize is the number of dishes on one index page.
const CatalogPageSize = 6

type CatalogUsecase struct {
	dishes repo.DishRepository
	cart   *CartUsecase
}

// DI
func NewCatalogUsecase(dishes repo.DishRepository, cart *CartUsecase) *CatalogUsecase {
	return &CatalogUsecase{dishes: dishes, cart: cart}
}

type CatalogQuery struct {
	Page int
	Name string
	Sort string
}

type DishOutput struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Price       string  `json:"price"`
	Weight      int64   `json:"weight"`
	Image       *string `json:"image"`
}

type IngredientOutput struct {
	Name     string `json:"name"`
	Quantity int64  `json:"quantity"`
}

type DishDetailOutput struct {
	DishOutput
	Ingredients []IngredientOutput `json:"ingredients"`
}

type CatalogPage struct {
	Items      []DishOutput `json:"items"`
	Page       int          `json:"page"`
	TotalPages int          `json:"total_pages"`
	Total      int64        `json:"total"`
	Name       string       `json:"name"`
	Sort       string       `json:"sort"`
	Cart       CartSummary  `json:"cart"`
}

// Index lists one page of dishes together with the owner's cart summary.
// Out-of-range pages clamp to the nearest valid page.
func (u *CatalogUsecase) Index(ctx context.Context, owner model.Owner, q CatalogQuery) (CatalogPage, error) {
	name := strings.TrimSpace(q.Name)
	if len(name) > 64 {
		return CatalogPage{}, NewHTTPError(http.StatusBadRequest, "name too long")
	}
	sort := q.Sort
	if sort != "asc" && sort != "desc" {
		sort = ""
	}

	page := q.Page
	if page < 1 {
		page = 1
	}

	listQuery := repo.DishListQuery{Page: page, Limit: CatalogPageSize, Name: name, Sort: sort}
	dishes, total, err := u.dishes.List(ctx, listQuery)
	if err != nil {
		return CatalogPage{}, err
	}

	totalPages := int((total + CatalogPageSize - 1) / CatalogPageSize)
	if totalPages < 1 {
		totalPages = 1
	}
	if page > totalPages {
		page = totalPages
		listQuery.Page = page
		dishes, total, err = u.dishes.List(ctx, listQuery)
		if err != nil {
			return CatalogPage{}, err
		}
	}

	summary, err := u.cart.Summary(ctx, owner)
	if err != nil {
		return CatalogPage{}, err
	}

	items := make([]DishOutput, 0, len(dishes))
	for _, d := range dishes {
		items = append(items, toDishOutput(d))
	}

	return CatalogPage{
		Items:      items,
		Page:       page,
		TotalPages: totalPages,
		Total:      total,
		Name:       name,
		Sort:       sort,
		Cart:       summary,
	}, nil
}

// Detail returns a dish with its ingredients.
func (u *CatalogUsecase) Detail(ctx context.Context, dishID int64) (DishDetailOutput, error) {
	if dishID <= 0 {
		return DishDetailOutput{}, ErrNotFound
	}
	d, err := u.dishes.FindDetail(ctx, dishID)
	if errors.Is(err, repo.ErrNotFound) {
		return DishDetailOutput{}, ErrNotFound
	}
	if err != nil {
		return DishDetailOutput{}, err
	}

	out := DishDetailOutput{
		DishOutput:  toDishOutput(d),
		Ingredients: make([]IngredientOutput, 0, len(d.Ingredients)),
	}
	for _, di := range d.Ingredients {
		out.Ingredients = append(out.Ingredients, IngredientOutput{
			Name:     di.Ingredient.Name,
			Quantity: di.Quantity,
		})
	}
	return out, nil
}

// Dish resolves a dish for cart actions; absence is ErrDishNotFound.
func (u *CatalogUsecase) Dish(ctx context.Context, dishID int64) (model.Dish, error) {
	return lookupDish(ctx, u.dishes, dishID)
}

// lookupDish is the catalog gateway used by the ledger: absence is DishNotFound.
func lookupDish(ctx context.Context, dishes repo.DishRepository, dishID int64) (model.Dish, error) {
	if dishID <= 0 {
		return model.Dish{}, ErrDishNotFound
	}
	d, err := dishes.FindByID(ctx, dishID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Dish{}, ErrDishNotFound
	}
	if err != nil {
		return model.Dish{}, err
	}
	return d, nil
}

func toDishOutput(d model.Dish) DishOutput {
	return DishOutput{
		ID:          d.ID,
		Name:        d.Name,
		Description: d.Description,
		Price:       pricing.Format(d.Price),
		Weight:      d.Weight,
		Image:       d.Image,
	}
}
