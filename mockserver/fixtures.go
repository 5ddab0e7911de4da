package mockserver

const imageHost = "https://cdn.mall.example.com/images/"

// Seed loads the demo catalog: categories, products with skus, banners,
// coupons and a few reviews.
func (s *Store) Seed() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.categories = []Category{
		{ID: 1, Name: "茶具", Icon: imageHost + "cat-tea.png", Sort: 1},
		{ID: 2, Name: "茶叶", Icon: imageHost + "cat-leaf.png", Sort: 2},
		{ID: 3, Name: "香器", Icon: imageHost + "cat-incense.png", Sort: 3},
		{ID: 4, Name: "花器", Icon: imageHost + "cat-vase.png", Sort: 4},
		{ID: 5, Name: "文房", Icon: imageHost + "cat-study.png", Sort: 5},
		{ID: 6, Name: "礼盒", Icon: imageHost + "cat-gift.png", Sort: 6},
	}

	products := []Product{
		{
			ID: 101, Name: "汝窑天青茶杯", SubTitle: "开片温润 一人一杯",
			MainImage: imageHost + "p101.jpg",
			SubImages: imageHost + "p101-1.jpg," + imageHost + "p101-2.jpg",
			Detail:    "<p>汝窑工艺，天青釉色。</p>", Price: 128, Stock: 50, Status: 1, CategoryID: 1,
			Skus: []Sku{
				{ID: 1011, ProductID: 101, SkuName: "天青 80ml", Price: 128, Stock: 30},
				{ID: 1012, ProductID: 101, SkuName: "月白 80ml", Price: 138, Stock: 20},
			},
		},
		{
			ID: 102, Name: "紫砂西施壶", SubTitle: "原矿紫泥 手工制作",
			MainImage: imageHost + "p102.jpg", Detail: "<p>宜兴原矿紫泥。</p>",
			Price: 680, Stock: 3, Status: 1, CategoryID: 1,
		},
		{
			ID: 201, Name: "明前西湖龙井", SubTitle: "二两罐装",
			MainImage: imageHost + "p201.jpg", SubImages: imageHost + "p201-1.jpg",
			Detail: "<p>明前头采。</p>", Price: 298, Stock: 100, Status: 1, CategoryID: 2,
			Skus: []Sku{
				{ID: 2011, ProductID: 201, SkuName: "100g", Price: 298, Stock: 60},
				{ID: 2012, ProductID: 201, SkuName: "250g", Price: 688, Stock: 40},
			},
		},
		{
			ID: 202, Name: "武夷大红袍", SubTitle: "岩韵醇厚",
			MainImage: imageHost + "p202.jpg", Detail: "<p>正岩产区。</p>",
			Price: 358, Stock: 80, Status: 1, CategoryID: 2,
		},
		{
			ID: 301, Name: "铜制香炉", SubTitle: "仿宣德炉形制",
			MainImage: imageHost + "p301.jpg", Detail: "<p>黄铜铸造。</p>",
			Price: 420, Stock: 15, Status: 1, CategoryID: 3,
		},
		{
			ID: 401, Name: "青瓷梅瓶", SubTitle: "插花清供",
			MainImage: imageHost + "p401.jpg", Detail: "<p>龙泉青瓷。</p>",
			Price: 560, Stock: 0, Status: 1, CategoryID: 4,
		},
		{
			ID: 501, Name: "端砚", SubTitle: "老坑石料",
			MainImage: imageHost + "p501.jpg", Detail: "<p>已下架。</p>",
			Price: 1280, Stock: 5, Status: 0, CategoryID: 5,
		},
	}
	for i := range products {
		p := products[i]
		s.products[p.ID] = &p
	}

	s.banners = []Banner{
		{ID: 1, Title: "新品上市", Image: imageHost + "banner-1.jpg", Link: "/pages/goods/details/index?spuId=101", Sort: 1},
		{ID: 2, Title: "春茶季", Image: imageHost + "banner-2.jpg", Link: "/pages/goods/list/index?categoryId=2", Sort: 2},
		{ID: 3, Title: "领券中心", Image: imageHost + "banner-3.jpg", Link: "/pages/coupon/coupon-list/index", Sort: 3},
	}

	for _, c := range []Coupon{
		{ID: 1, Name: "新人立减", Type: CouponPrice, Amount: 20, MinAmount: 100,
			StartTime: "2026-01-01 00:00:00", EndTime: "2026-12-31 23:59:59", Total: 1000},
		{ID: 2, Name: "全场八五折", Type: CouponDiscount, Amount: 8.5, MinAmount: 300,
			StartTime: "2026-01-01 00:00:00", EndTime: "2026-12-31 23:59:59", Total: 500},
		{ID: 3, Name: "限量满减", Type: CouponPrice, Amount: 50, MinAmount: 500,
			StartTime: "2026-01-01 00:00:00", EndTime: "2026-12-31 23:59:59", Total: 1, Used: 1},
	} {
		s.coupons[c.ID] = &c
	}

	reviewer := &User{ID: 1, OpenID: "openid-seed", NickName: "茶友", Avatar: imageHost + "avatar-1.png"}
	s.users[reviewer.ID] = reviewer
	s.openIDs[reviewer.OpenID] = reviewer.ID
	s.comments = append(s.comments,
		&Comment{ID: 1, UserID: 1, ProductID: 101, Rating: 5, Content: "釉色很正，开片漂亮。",
			Images: imageHost + "c1-1.jpg," + imageHost + "c1-2.jpg", CreatedAt: "2026-03-01 10:00:00"},
		&Comment{ID: 2, UserID: 1, ProductID: 101, Rating: 4, Content: "包装稳妥。", CreatedAt: "2026-03-02 11:30:00"},
		&Comment{ID: 3, UserID: 99, ProductID: 201, Rating: 5, Content: "香气高扬。", CreatedAt: "2026-03-05 09:15:00"},
	)
}
