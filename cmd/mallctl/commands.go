package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/kbukum/mallkit/api/address"
	"github.com/kbukum/mallkit/api/cart"
	"github.com/kbukum/mallkit/api/comment"
	"github.com/kbukum/mallkit/api/coupon"
	"github.com/kbukum/mallkit/api/home"
	"github.com/kbukum/mallkit/api/order"
	"github.com/kbukum/mallkit/api/product"
	"github.com/kbukum/mallkit/api/user"
	"github.com/kbukum/mallkit/storefront"
	"github.com/kbukum/mallkit/version"
)

type command struct {
	usage string
	run   func(ctx context.Context, a *app, args []string) error
}

var commands map[string]command

func init() {
	commands = map[string]command{
		"login":           {"login <code> [-nick name] [-avatar url] [-gender n]", cmdLogin},
		"logout":          {"logout", cmdLogout},
		"status":          {"status", cmdStatus},
		"profile":         {"profile", cmdProfile},
		"home":            {"home", cmdHome},
		"products":        {"products [-page n] [-limit n] [-category id] [-keyword text]", cmdProducts},
		"product":         {"product <id>", cmdProduct},
		"categories":      {"categories", cmdCategories},
		"comments":        {"comments <product-id> [-page n] [-limit n]", cmdComments},
		"comment":         {"comment -product id -order id -rating n -content text [-images a,b]", cmdComment},
		"cart":            {"cart", cmdCart},
		"cart-add":        {"cart-add <product-id> [-sku id] [-qty n]", cmdCartAdd},
		"cart-update":     {"cart-update <cart-id> <quantity>", cmdCartUpdate},
		"cart-remove":     {"cart-remove <cart-id>", cmdCartRemove},
		"orders":          {"orders [-page n] [-limit n] [-status n]", cmdOrders},
		"order":           {"order <id>", cmdOrder},
		"order-create":    {"order-create -address id [-cart ids] [-coupon id] [-remark text]", cmdOrderCreate},
		"pay":             {"pay <order-id>", cmdPay},
		"cancel":          {"cancel <order-id>", cmdCancel},
		"addresses":       {"addresses", cmdAddresses},
		"address-add":     {"address-add -name n -phone p -province p -city c -district d -detail text [-default]", cmdAddressAdd},
		"address-delete":  {"address-delete <id>", cmdAddressDelete},
		"address-default": {"address-default <id>", cmdAddressDefault},
		"coupons":         {"coupons", cmdCoupons},
		"coupon-claim":    {"coupon-claim <id>", cmdCouponClaim},
		"my-coupons":      {"my-coupons [-status default|available|used|expired]", cmdMyCoupons},
		"version":         {"version", cmdVersion},

		"sf-login":    {"sf-login <username> <password>", cmdStorefrontLogin},
		"sf-products": {"sf-products [-page n] [-size n] [-category id] [-brand id]", cmdStorefrontProducts},
		"sf-search":   {"sf-search <keyword>", cmdStorefrontSearch},
		"sf-cart":     {"sf-cart", cmdStorefrontCart},
		"sf-orders":   {"sf-orders [-status n]", cmdStorefrontOrders},
	}
}

func usage(fs *flag.FlagSet) {
	w := fs.Output()
	fmt.Fprintln(w, "usage: mallctl [flags] <command> [args]")
	fmt.Fprintln(w, "\nflags:")
	fs.PrintDefaults()
	fmt.Fprintln(w, "\ncommands:")
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		fmt.Fprintf(w, "  %s\n", commands[name].usage)
	}
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

func done(w io.Writer) error {
	return printJSON(w, map[string]bool{"ok": true})
}

// flags parses args with a per-command flag set. Flags may come before or
// after positional arguments.
func flags(name string, args []string, define func(fs *flag.FlagSet)) ([]string, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	if define != nil {
		define(fs)
	}
	var positional []string
	for {
		if err := fs.Parse(args); err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		if fs.NArg() == 0 {
			break
		}
		positional = append(positional, fs.Arg(0))
		args = fs.Args()[1:]
	}
	return positional, nil
}

func argID(name string, pos []string, i int) (int64, error) {
	if len(pos) <= i {
		return 0, fmt.Errorf("%s: missing argument (usage: %s)", name, commands[name].usage)
	}
	id, err := strconv.ParseInt(pos[i], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid number %q", name, pos[i])
	}
	return id, nil
}

func parseIDs(s string) ([]int64, error) {
	var ids []int64
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid id %q", part)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// --- session ---

func cmdLogin(ctx context.Context, a *app, args []string) error {
	var p user.Profile
	pos, err := flags("login", args, func(fs *flag.FlagSet) {
		fs.StringVar(&p.NickName, "nick", "", "nick name")
		fs.StringVar(&p.AvatarURL, "avatar", "", "avatar url")
		fs.IntVar(&p.Gender, "gender", 0, "gender")
	})
	if err != nil {
		return err
	}
	if len(pos) == 0 {
		return fmt.Errorf("login: missing code (usage: %s)", commands["login"].usage)
	}
	res, err := user.New(a.client, a.creds).WechatLogin(ctx, pos[0], p)
	if err != nil {
		return err
	}
	return printJSON(a.out, res.User)
}

func cmdLogout(ctx context.Context, a *app, _ []string) error {
	if err := user.New(a.client, a.creds).Logout(ctx); err != nil {
		return err
	}
	return done(a.out)
}

func cmdStatus(ctx context.Context, a *app, _ []string) error {
	st, err := user.New(a.client, a.creds).LoginStatus(ctx)
	if err != nil {
		return err
	}
	st.Token = ""
	return printJSON(a.out, st)
}

func cmdProfile(ctx context.Context, a *app, _ []string) error {
	u, err := user.New(a.client, a.creds).Profile(ctx)
	if err != nil {
		return err
	}
	return printJSON(a.out, u)
}

// --- catalog ---

func cmdHome(ctx context.Context, a *app, _ []string) error {
	h, err := home.New(a.client).Fetch(ctx)
	if err != nil {
		return err
	}
	return printJSON(a.out, h)
}

func cmdProducts(ctx context.Context, a *app, args []string) error {
	var p product.ListParams
	if _, err := flags("products", args, func(fs *flag.FlagSet) {
		fs.IntVar(&p.Page, "page", 1, "page number")
		fs.IntVar(&p.Limit, "limit", 20, "page size")
		fs.Int64Var(&p.CategoryID, "category", 0, "category id")
		fs.StringVar(&p.Keyword, "keyword", "", "search keyword")
	}); err != nil {
		return err
	}
	return printJSON(a.out, product.New(a.client).ListGoods(ctx, p))
}

func cmdProduct(ctx context.Context, a *app, args []string) error {
	id, err := argID("product", args, 0)
	if err != nil {
		return err
	}
	d, err := product.New(a.client).GetGoods(ctx, id)
	if err != nil {
		return err
	}
	return printJSON(a.out, d)
}

func cmdCategories(ctx context.Context, a *app, _ []string) error {
	return printJSON(a.out, product.New(a.client).ListCategories(ctx))
}

func cmdComments(ctx context.Context, a *app, args []string) error {
	var page, limit int
	pos, err := flags("comments", args, func(fs *flag.FlagSet) {
		fs.IntVar(&page, "page", 1, "page number")
		fs.IntVar(&limit, "limit", 10, "page size")
	})
	if err != nil {
		return err
	}
	id, err := argID("comments", pos, 0)
	if err != nil {
		return err
	}
	return printJSON(a.out, comment.New(a.client).ListForProduct(ctx, id, page, limit))
}

func cmdComment(ctx context.Context, a *app, args []string) error {
	var c comment.NewComment
	var images string
	if _, err := flags("comment", args, func(fs *flag.FlagSet) {
		fs.Int64Var(&c.ProductID, "product", 0, "product id")
		fs.Int64Var(&c.OrderID, "order", 0, "order id")
		fs.IntVar(&c.Rating, "rating", 5, "rating 1-5")
		fs.StringVar(&c.Content, "content", "", "review text")
		fs.StringVar(&images, "images", "", "comma separated image urls")
	}); err != nil {
		return err
	}
	if images != "" {
		c.Images = strings.Split(images, ",")
	}
	if err := comment.New(a.client).Create(ctx, c); err != nil {
		return err
	}
	return done(a.out)
}

// --- cart ---

func cmdCart(ctx context.Context, a *app, _ []string) error {
	g, err := cart.New(a.client).FetchGroup(ctx)
	if err != nil {
		return err
	}
	return printJSON(a.out, g)
}

func cmdCartAdd(ctx context.Context, a *app, args []string) error {
	var sku int64
	var qty int
	pos, err := flags("cart-add", args, func(fs *flag.FlagSet) {
		fs.Int64Var(&sku, "sku", 0, "sku id")
		fs.IntVar(&qty, "qty", 1, "quantity")
	})
	if err != nil {
		return err
	}
	id, err := argID("cart-add", pos, 0)
	if err != nil {
		return err
	}
	if err := cart.New(a.client).Add(ctx, id, sku, qty); err != nil {
		return err
	}
	return done(a.out)
}

func cmdCartUpdate(ctx context.Context, a *app, args []string) error {
	id, err := argID("cart-update", args, 0)
	if err != nil {
		return err
	}
	qty, err := argID("cart-update", args, 1)
	if err != nil {
		return err
	}
	if err := cart.New(a.client).Update(ctx, id, int(qty)); err != nil {
		return err
	}
	return done(a.out)
}

func cmdCartRemove(ctx context.Context, a *app, args []string) error {
	id, err := argID("cart-remove", args, 0)
	if err != nil {
		return err
	}
	if err := cart.New(a.client).Remove(ctx, id); err != nil {
		return err
	}
	return done(a.out)
}

// --- orders ---

func cmdOrders(ctx context.Context, a *app, args []string) error {
	var page, limit, status int
	if _, err := flags("orders", args, func(fs *flag.FlagSet) {
		fs.IntVar(&page, "page", 1, "page number")
		fs.IntVar(&limit, "limit", 10, "page size")
		fs.IntVar(&status, "status", 0, "status filter (1-5)")
	}); err != nil {
		return err
	}
	p, err := order.New(a.client).List(ctx, page, limit, order.Status(status))
	if err != nil {
		return err
	}
	return printJSON(a.out, p)
}

func cmdOrder(ctx context.Context, a *app, args []string) error {
	id, err := argID("order", args, 0)
	if err != nil {
		return err
	}
	o, err := order.New(a.client).Get(ctx, id)
	if err != nil {
		return err
	}
	return printJSON(a.out, o)
}

func cmdOrderCreate(ctx context.Context, a *app, args []string) error {
	var req order.CreateRequest
	var cartIDs string
	if _, err := flags("order-create", args, func(fs *flag.FlagSet) {
		fs.Int64Var(&req.AddressID, "address", 0, "address id")
		fs.StringVar(&cartIDs, "cart", "", "comma separated cart ids")
		fs.Int64Var(&req.CouponID, "coupon", 0, "user coupon id")
		fs.StringVar(&req.Remark, "remark", "", "order remark")
	}); err != nil {
		return err
	}
	ids, err := parseIDs(cartIDs)
	if err != nil {
		return fmt.Errorf("order-create: %w", err)
	}
	req.CartIDs = ids
	o, err := order.New(a.client).Create(ctx, req)
	if err != nil {
		return err
	}
	return printJSON(a.out, o)
}

func cmdPay(ctx context.Context, a *app, args []string) error {
	id, err := argID("pay", args, 0)
	if err != nil {
		return err
	}
	if err := order.New(a.client).Pay(ctx, id, order.PaymentWechat); err != nil {
		return err
	}
	return done(a.out)
}

func cmdCancel(ctx context.Context, a *app, args []string) error {
	id, err := argID("cancel", args, 0)
	if err != nil {
		return err
	}
	if err := order.New(a.client).Cancel(ctx, id); err != nil {
		return err
	}
	return done(a.out)
}

// --- addresses ---

func cmdAddresses(ctx context.Context, a *app, _ []string) error {
	list, err := address.New(a.client).List(ctx)
	if err != nil {
		return err
	}
	return printJSON(a.out, list)
}

func cmdAddressAdd(ctx context.Context, a *app, args []string) error {
	var addr address.Address
	if _, err := flags("address-add", args, func(fs *flag.FlagSet) {
		fs.StringVar(&addr.ReceiverName, "name", "", "receiver name")
		fs.StringVar(&addr.Phone, "phone", "", "mobile number")
		fs.StringVar(&addr.Province, "province", "", "province")
		fs.StringVar(&addr.City, "city", "", "city")
		fs.StringVar(&addr.District, "district", "", "district")
		fs.StringVar(&addr.Detail, "detail", "", "street address")
		fs.StringVar(&addr.PostalCode, "postal", "", "postal code")
		fs.BoolVar(&addr.IsDefault, "default", false, "make default")
	}); err != nil {
		return err
	}
	saved, err := address.New(a.client).Create(ctx, addr)
	if err != nil {
		return err
	}
	return printJSON(a.out, saved)
}

func cmdAddressDelete(ctx context.Context, a *app, args []string) error {
	id, err := argID("address-delete", args, 0)
	if err != nil {
		return err
	}
	if err := address.New(a.client).Delete(ctx, id); err != nil {
		return err
	}
	return done(a.out)
}

func cmdAddressDefault(ctx context.Context, a *app, args []string) error {
	id, err := argID("address-default", args, 0)
	if err != nil {
		return err
	}
	if err := address.New(a.client).SetDefault(ctx, id); err != nil {
		return err
	}
	return done(a.out)
}

// --- coupons ---

func cmdCoupons(ctx context.Context, a *app, _ []string) error {
	return printJSON(a.out, coupon.New(a.client).List(ctx))
}

func cmdCouponClaim(ctx context.Context, a *app, args []string) error {
	id, err := argID("coupon-claim", args, 0)
	if err != nil {
		return err
	}
	if err := coupon.New(a.client).Claim(ctx, id); err != nil {
		return err
	}
	return done(a.out)
}

func cmdMyCoupons(ctx context.Context, a *app, args []string) error {
	var status string
	if _, err := flags("my-coupons", args, func(fs *flag.FlagSet) {
		fs.StringVar(&status, "status", coupon.StatusDefault, "status filter")
	}); err != nil {
		return err
	}
	return printJSON(a.out, coupon.New(a.client).ListMine(ctx, status))
}

func cmdVersion(_ context.Context, a *app, _ []string) error {
	return printJSON(a.out, version.Get())
}

// --- storefront ---

func cmdStorefrontLogin(ctx context.Context, a *app, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("sf-login: usage: %s", commands["sf-login"].usage)
	}
	sf, err := a.storefront()
	if err != nil {
		return err
	}
	reply, err := sf.Login(ctx, storefront.LoginParam{Username: args[0], Password: args[1]})
	if err != nil {
		return err
	}
	return printJSON(a.out, reply)
}

func cmdStorefrontProducts(ctx context.Context, a *app, args []string) error {
	var q storefront.ProductQuery
	if _, err := flags("sf-products", args, func(fs *flag.FlagSet) {
		fs.IntVar(&q.PageNum, "page", 1, "page number")
		fs.IntVar(&q.PageSize, "size", 10, "page size")
		fs.Int64Var(&q.ProductCategoryID, "category", 0, "category id")
		fs.Int64Var(&q.BrandID, "brand", 0, "brand id")
	}); err != nil {
		return err
	}
	sf, err := a.storefront()
	if err != nil {
		return err
	}
	reply, err := sf.ProductList(ctx, q)
	if err != nil {
		return err
	}
	return printJSON(a.out, reply)
}

func cmdStorefrontSearch(ctx context.Context, a *app, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("sf-search: usage: %s", commands["sf-search"].usage)
	}
	sf, err := a.storefront()
	if err != nil {
		return err
	}
	reply, err := sf.Search(ctx, args[0], storefront.ProductQuery{})
	if err != nil {
		return err
	}
	return printJSON(a.out, reply)
}

func cmdStorefrontCart(ctx context.Context, a *app, _ []string) error {
	sf, err := a.storefront()
	if err != nil {
		return err
	}
	reply, err := sf.CartList(ctx)
	if err != nil {
		return err
	}
	return printJSON(a.out, reply)
}

func cmdStorefrontOrders(ctx context.Context, a *app, args []string) error {
	status := -1
	if _, err := flags("sf-orders", args, func(fs *flag.FlagSet) {
		fs.IntVar(&status, "status", -1, "status filter, -1 for all")
	}); err != nil {
		return err
	}
	var q storefront.OrderQuery
	if status >= 0 {
		q.Status = &status
	}
	sf, err := a.storefront()
	if err != nil {
		return err
	}
	reply, err := sf.OrderList(ctx, q)
	if err != nil {
		return err
	}
	return printJSON(a.out, reply)
}
