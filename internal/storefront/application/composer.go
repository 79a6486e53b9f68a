package application

import "github.com/wyfcoding/marketstore/internal/storefront/domain"

// Compose 将商品记录与关联查找表合成一条聚合视图。
// 纯函数，无 I/O。商品自身字段原样保留；冗余字段只在关联命中时填充，
// 未命中保持零值，默认值由视图层负责。
func Compose(product domain.ProductRecord, related domain.RelatedEntities) domain.DisplayProduct {
	dp := domain.DisplayProduct{ProductRecord: product}

	if store, ok := related.StoresByID[product.StoreID]; ok {
		dp.StoreName = store.Name
		dp.StoreAddress = store.Address
		dp.SellerID = store.SellerID
		if seller, ok := related.SellersByID[store.SellerID]; ok {
			dp.SellerName = seller.DisplayName
		}
	}

	if category, ok := related.CategoriesByID[product.CategoryID]; ok {
		dp.CategoryName = category.Name
	}

	return dp
}

// ComposeAll 合成一页商品，输出与输入等长且顺序一致
func ComposeAll(products []domain.ProductRecord, related domain.RelatedEntities) []domain.DisplayProduct {
	out := make([]domain.DisplayProduct, len(products))
	for i, p := range products {
		out[i] = Compose(p, related)
	}
	return out
}
