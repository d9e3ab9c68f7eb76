package catalog

import (
	"product-catalog/internal/dispatch"
	"product-catalog/internal/repository/product"
)

// RegisterHandlers wires every catalog command and query into the
// dispatcher. Called once at startup.
func RegisterHandlers(d *dispatch.Dispatcher, repo product.Repository, uow UnitOfWork) {
	dispatch.Register(d, NewCreateProductHandler(uow).Handle)
	dispatch.Register(d, NewUpdateProductHandler(repo, uow).Handle)
	dispatch.Register(d, NewDeleteProductHandler(repo, uow).Handle)
	dispatch.Register(d, NewGetAllProductsHandler(repo).Handle)
	dispatch.Register(d, NewGetProductByIDHandler(repo).Handle)
	dispatch.Register(d, NewGetProductsByCategoryHandler(repo).Handle)
	dispatch.Register(d, NewSearchProductsHandler(repo).Handle)
	dispatch.Register(d, NewGetActiveProductsHandler(repo).Handle)
}
