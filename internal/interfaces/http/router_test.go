package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/mrvekratl/BE124/internal/application/account"
	"github.com/mrvekratl/BE124/internal/application/auth"
	"github.com/mrvekratl/BE124/internal/application/cart"
	"github.com/mrvekratl/BE124/internal/application/checkout"
	"github.com/mrvekratl/BE124/internal/application/dto"
	"github.com/mrvekratl/BE124/internal/application/usecase"
	domaincart "github.com/mrvekratl/BE124/internal/domain/cart"
	"github.com/mrvekratl/BE124/internal/domain/entity"
	"github.com/mrvekratl/BE124/internal/infrastructure/memory"
	"github.com/mrvekratl/BE124/internal/infrastructure/pdf"
	"github.com/mrvekratl/BE124/internal/infrastructure/storage"
	apphttp "github.com/mrvekratl/BE124/internal/interfaces/http"
	pkgjwt "github.com/mrvekratl/BE124/pkg/jwt"
	"github.com/mrvekratl/BE124/pkg/logger"
)

// ─── Fixture: API completa sobre el store en memoria ───────────────────────────

type apiFixture struct {
	app       *fiber.App
	store     *memory.Store
	productID string
	adminTok  string
	sellerTok string
}

func newAPI(t *testing.T) *apiFixture {
	t.Helper()
	s := memory.New()
	tx := memory.NewTxRunner(s)
	users := memory.NewUserRepository(s)
	products := memory.NewProductRepository(s)
	images := memory.NewProductImageRepository(s)
	categories := memory.NewCategoryRepository(s)
	comments := memory.NewCommentRepository(s)
	orders := memory.NewOrderRepository(s)
	log := logger.Nop()

	files, err := storage.NewLocalStorage(t.TempDir(), "/uploads")
	require.NoError(t, err)
	checkoutUC := checkout.NewUseCase(tx, orders, log)
	profileUC := account.NewProfileUseCase(users)

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:     auth.NewAuthUseCase(users, auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer}),
		ProfileUC:  profileUC,
		SellerUC:   account.NewSellerUseCase(tx, users, memory.NewRoleRepository(s), memory.NewSellerRequestRepository(s), log),
		CartUC:     cart.NewUseCase(memory.NewCartRepository(s), products, domaincart.PolicyReject),
		CheckoutUC: checkoutUC,
		ReceiptUC:  checkout.NewReceiptUseCase(checkoutUC, pdf.NewReceiptGenerator("BE124")),
		ProductUC: usecase.NewProductUseCase(tx, products, images, categories, memory.NewDiscountRepository(s),
			comments, files, log),
		CategoryUC: usecase.NewCategoryUseCase(categories),
		CommentUC:  usecase.NewCommentUseCase(comments, products),
		ContactUC:  usecase.NewContactUseCase(memory.NewContactRepository(s)),
		UserUC:     usecase.NewUserUseCase(users),
		JWTSecret:  testJWTSecret,
	})

	ctx := context.Background()
	now := time.Now()
	hash, err := bcrypt.GenerateFromPassword([]byte("admin-pass"), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, users.Create(ctx, &entity.User{ID: "admin-1", FirstName: "Root", Email: "admin@shop.test",
		PasswordHash: string(hash), Role: entity.RoleAdmin, Enabled: true, CreatedAt: now, UpdatedAt: now}))
	require.NoError(t, users.Create(ctx, &entity.User{ID: "seller-1", FirstName: "Sol", LastName: "Vende", Email: "sol@shop.test",
		PasswordHash: string(hash), Role: entity.RoleSeller, Enabled: true, CreatedAt: now, UpdatedAt: now}))
	require.NoError(t, categories.Create(ctx, &entity.Category{ID: "cat-1", Name: "Hogar", Color: "#112233", CreatedAt: now, UpdatedAt: now}))
	require.NoError(t, products.Create(ctx, &entity.Product{ID: "P7", SellerID: "seller-1", CategoryID: "cat-1", Name: "Lámpara",
		Price: decimal.RequireFromString("25.00"), StockAmount: 10, Enabled: true, CreatedAt: now, UpdatedAt: now}))

	return &apiFixture{
		app:       app,
		store:     s,
		productID: "P7",
		adminTok:  bearer(t, "admin-1", entity.RoleAdmin),
		sellerTok: bearer(t, "seller-1", entity.RoleSeller),
	}
}

func bearer(t *testing.T, userID string, role entity.Role) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, userID, role.Claim(), testIssuer, testExpMin)
	require.NoError(t, err)
	return "Bearer " + tok
}

// call ejecuta una petición JSON y decodifica la respuesta en out (si no es nil).
func (f *apiFixture) call(t *testing.T, method, path, token string, body any, out any) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)
	if out != nil {
		defer resp.Body.Close()
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp
}

func (f *apiFixture) registerBuyer(t *testing.T, email string) string {
	t.Helper()
	resp := f.call(t, http.MethodPost, "/api/auth/register", "", dto.RegisterRequest{
		FirstName: "Ana", LastName: "Gómez", Email: email, Password: "secreto123",
	}, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var login dto.LoginResponse
	resp = f.call(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: email, Password: "secreto123"}, &login)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NotEmpty(t, login.Token)
	return "Bearer " + login.Token
}

// ─── Flujo de compra ───────────────────────────────────────────────────────────

func TestAPI_CartCheckoutFlow(t *testing.T) {
	f := newAPI(t)
	buyer := f.registerBuyer(t, "ana@shop.test")

	// Caso 1: agregar dos veces consolida la línea
	for i := 0; i < 2; i++ {
		resp := f.call(t, http.MethodPost, "/api/cart/items", buyer, dto.AddToCartRequest{ProductID: f.productID}, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}
	var cartView dto.CartResponse
	f.call(t, http.MethodGet, "/api/cart", buyer, nil, &cartView)
	require.Len(t, cartView.Items, 1)
	assert.Equal(t, 2, cartView.Items[0].Quantity)
	assert.True(t, decimal.RequireFromString("50").Equal(cartView.Total))

	// Caso 2: confirmar pedido
	var placed dto.PlaceOrderResponse
	resp := f.call(t, http.MethodPost, "/api/orders", buyer, dto.PlaceOrderRequest{Address: "123 Main St"}, &placed)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Regexp(t, `^[0-9A-F]{16}$`, placed.OrderCode)

	var detail dto.OrderDetailResponse
	resp = f.call(t, http.MethodGet, "/api/orders/"+placed.OrderCode, buyer, nil, &detail)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, detail.Items, 1)
	assert.Equal(t, "123 Main St", detail.Address)
	assert.True(t, decimal.RequireFromString("50").Equal(detail.Total))

	// Caso 3: el carrito quedó vacío; un segundo envío no crea pedido
	var errBody dto.ErrorResponse
	resp = f.call(t, http.MethodPost, "/api/orders", buyer, dto.PlaceOrderRequest{Address: "123 Main St"}, &errBody)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Equal(t, "EMPTY_CART", errBody.Code)

	// Caso 4: comprobante PDF
	req := httptest.NewRequest(http.MethodGet, "/api/orders/"+placed.OrderCode+"/receipt", nil)
	req.Header.Set("Authorization", buyer)
	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), "pedido_"+placed.OrderCode+".pdf")
	raw, _ := io.ReadAll(resp.Body)
	assert.True(t, bytes.HasPrefix(raw, []byte("%PDF")))

	// Caso 5: otro usuario no ve el pedido
	other := f.registerBuyer(t, "otro@shop.test")
	resp = f.call(t, http.MethodGet, "/api/orders/"+placed.OrderCode, other, nil, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAPI_CheckoutValidation(t *testing.T) {
	f := newAPI(t)
	buyer := f.registerBuyer(t, "ana@shop.test")

	var errBody dto.ErrorResponse
	resp := f.call(t, http.MethodPost, "/api/orders", buyer, dto.PlaceOrderRequest{Address: "   "}, &errBody)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", errBody.Code)
}

func TestAPI_CartRequiresToken(t *testing.T) {
	f := newAPI(t)
	resp := f.call(t, http.MethodGet, "/api/cart", "", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAPI_PublicCatalog(t *testing.T) {
	f := newAPI(t)

	var catalog dto.ProductCatalogResponse
	resp := f.call(t, http.MethodGet, "/api/products", "", nil, &catalog)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, catalog.Items, 1)
	assert.Equal(t, "Hogar", catalog.Items[0].CategoryName)

	resp = f.call(t, http.MethodGet, "/api/products/no-existe", "", nil, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

// ─── Cuenta y administración ───────────────────────────────────────────────────

func TestAPI_SellerRequestApproval(t *testing.T) {
	f := newAPI(t)
	buyer := f.registerBuyer(t, "ana@shop.test")

	var profile dto.UserResponse
	f.call(t, http.MethodGet, "/api/profile", buyer, nil, &profile)
	require.NotEmpty(t, profile.ID)

	resp := f.call(t, http.MethodPost, "/api/profile/seller-request", buyer, dto.SellerRequestInput{Message: "Quiero vender"}, nil)
	require.Equal(t, http.StatusAccepted, resp.StatusCode)

	// Caso: segunda solicitud mientras está pendiente
	resp = f.call(t, http.MethodPost, "/api/profile/seller-request", buyer, dto.SellerRequestInput{Message: "otra vez"}, nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	// Caso: un comprador no puede aprobar
	resp = f.call(t, http.MethodPost, "/api/admin/seller-requests/"+profile.ID+"/approve", buyer, nil, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	var pending []dto.SellerRequestResponse
	f.call(t, http.MethodGet, "/api/admin/seller-requests", f.adminTok, nil, &pending)
	require.Len(t, pending, 1)
	assert.Equal(t, profile.ID, pending[0].UserID)

	resp = f.call(t, http.MethodPost, "/api/admin/seller-requests/"+profile.ID+"/approve", f.adminTok, nil, nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	f.call(t, http.MethodGet, "/api/profile", buyer, nil, &profile)
	assert.Equal(t, "seller", profile.AccountState)

	// el token emitido como comprador ya abre las rutas de vendedor
	resp = f.call(t, http.MethodGet, "/api/seller/products", buyer, nil, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAPI_DisabledAccountIsRejected(t *testing.T) {
	f := newAPI(t)
	buyer := f.registerBuyer(t, "ana@shop.test")
	var profile dto.UserResponse
	f.call(t, http.MethodGet, "/api/profile", buyer, nil, &profile)

	resp := f.call(t, http.MethodPost, "/api/admin/users/"+profile.ID+"/disable", f.adminTok, nil, nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	var errBody dto.ErrorResponse
	resp = f.call(t, http.MethodGet, "/api/cart", buyer, nil, &errBody)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "ACCOUNT_DISABLED", errBody.Code)
}

func TestAPI_EditProfileChangesPassword(t *testing.T) {
	f := newAPI(t)
	buyer := f.registerBuyer(t, "ana@shop.test")

	resp := f.call(t, http.MethodPut, "/api/profile", buyer, dto.EditProfileRequest{
		FirstName: "Ana María", LastName: "Gómez", ChangePassword: true, NewPassword: "nuevo-secreto",
	}, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = f.call(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: "ana@shop.test", Password: "secreto123"}, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp = f.call(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: "ana@shop.test", Password: "nuevo-secreto"}, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

// ─── Vendedor ──────────────────────────────────────────────────────────────────

func TestAPI_SellerCreatesProductWithImage(t *testing.T) {
	f := newAPI(t)

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	require.NoError(t, w.WriteField("category_id", "cat-1"))
	require.NoError(t, w.WriteField("name", "Silla"))
	require.NoError(t, w.WriteField("price", "99.90"))
	require.NoError(t, w.WriteField("stock_amount", "4"))
	part, err := w.CreateFormFile("images", "silla.png")
	require.NoError(t, err)
	_, err = part.Write([]byte("fake-png"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/seller/products", &body)
	req.Header.Set(fiber.HeaderContentType, w.FormDataContentType())
	req.Header.Set("Authorization", f.sellerTok)
	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created dto.ProductResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	assert.Equal(t, "Silla", created.Name)
	assert.True(t, created.Enabled)
	require.Len(t, created.ImageURLs, 1)
	assert.Regexp(t, `^/uploads/[0-9a-f-]{36}\.png$`, created.ImageURLs[0])

	var mine []dto.ProductResponse
	f.call(t, http.MethodGet, "/api/seller/products", f.sellerTok, nil, &mine)
	assert.Len(t, mine, 2)
}

func TestAPI_BuyerCannotUseSellerRoutes(t *testing.T) {
	f := newAPI(t)
	buyer := f.registerBuyer(t, "ana@shop.test")
	resp := f.call(t, http.MethodGet, "/api/seller/products", buyer, nil, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}
