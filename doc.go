// Package upgradechat provides a Go client SDK for the Upgrade.Chat API,
// a monetization platform for Discord communities.
//
// The client handles the OAuth client-credentials exchange, caches the
// access token until it expires, backs off and retries on rate-limit
// responses, and parses responses into typed models.
//
// Basic usage:
//
//	client, err := upgradechat.New(clientID, clientSecret)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	orders, err := client.Orders(ctx, upgradechat.OrdersQuery{Limit: 50})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	for _, order := range orders.Data {
//	    fmt.Println(order.UUID, order.Total)
//	}
//
// List endpoints are also exposed as demand-driven pagers:
//
//	pager := client.OrdersPages(upgradechat.OrdersQuery{})
//	for pager.More() {
//	    page, err := pager.NextPage(ctx)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    // use page.Data
//	}
package upgradechat
