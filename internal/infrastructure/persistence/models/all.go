package models

// All returns every persistence model in dependency order, for AutoMigrate.
func All() []any {
	return []any{
		&UserModel{},
		&CategoryModel{},
		&ProductTypeModel{},
		&BrandModel{},
		&BrandProductTypeModel{},
		&TagModel{},
		&BuyerProfileModel{},
		&BuyerPreferredCategoryModel{},
		&SellerProfileModel{},
		&SellerProductTypeModel{},
		&ProductModel{},
		&ProductImageModel{},
		&ProductAttributeModel{},
		&ProductTagModel{},
		&ProductReviewModel{},
		&FavoriteModel{},
		&OrderModel{},
		&OrderItemModel{},
		&InventoryLogModel{},
		&InquiryModel{},
		&SupplierReviewModel{},
		&ChatRoomModel{},
		&ChatMessageModel{},
		&ProductViewModel{},
		&ActivityModel{},
		&SalesDataModel{},
	}
}
