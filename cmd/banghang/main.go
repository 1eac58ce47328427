package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/cheggaaa/pb/v3"
	"github.com/pterm/pterm"

	"github.com/tdnguyen/banghang/internal/catalog"
	"github.com/tdnguyen/banghang/internal/config"
	"github.com/tdnguyen/banghang/internal/imgproxy"
	"github.com/tdnguyen/banghang/internal/models"
	"github.com/tdnguyen/banghang/internal/ui"
)

// printExamples displays usage examples for the program
func printExamples() {
	fmt.Println("\n📋 Bảng Hàng Usage Examples 📋")

	fmt.Println("\n1. Browse the catalog interactively (type to search, Tab to change sort):")
	fmt.Println("   banghang")

	fmt.Println("\n2. One-shot table of page 2, sorted by ascending price:")
	fmt.Println("   banghang -table -sort price-asc -page 2")

	fmt.Println("\n3. Search for \"áo\" with 20 rows per page, skipping image probing:")
	fmt.Println("   banghang -table -search \"áo\" -page-size 20 -no-images")

	fmt.Println("\n4. Point at a different catalog endpoint through a proxy:")
	fmt.Println("   banghang -url https://example.com/products -proxy http://localhost:8080")

	os.Exit(0)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	// Command line flags; defaults come from banghang.yaml when present
	endpoint := flag.String("url", cfg.Catalog.Endpoint, "Catalog endpoint to fetch")
	proxyURL := flag.String("proxy", cfg.Catalog.Proxy, "Proxy URL to use")
	search := flag.String("search", "", "Search term to filter product titles")
	sortKey := flag.String("sort", cfg.Display.DefaultSort, "Sort key (none, price-asc, price-desc, name-asc, name-desc)")
	page := flag.Int("page", 1, "Page number to display")
	pageSize := flag.Int("page-size", cfg.Display.PageSize, "Rows per page")
	table := flag.Bool("table", false, "Print the table once and exit instead of running interactively")
	noImages := flag.Bool("no-images", cfg.Display.NoImages, "Skip image probing; show raw image URLs")
	debug := flag.Bool("debug", false, "Enable debug mode")
	examples := flag.Bool("examples", false, "Show usage examples")

	// Banner control flags (two aliases for the same functionality)
	silence := flag.Bool("silence", false, "Silence the banner")
	noBanner := flag.Bool("nobanner", false, "Silence the banner (alias for -silence)")

	flag.Parse()

	ui.PrintBanner(*silence || *noBanner)

	if *examples {
		printExamples()
		return
	}

	// Validate inputs
	if !models.IsValidSortKey(*sortKey) {
		log.Fatal("Invalid sort key. Must be one of: none, price-asc, price-desc, name-asc, name-desc")
	}
	if *pageSize <= 0 {
		log.Fatal("Page size must be a positive integer")
	}

	spinner, _ := pterm.DefaultSpinner.Start(ui.LoadingText)
	products, err := catalog.Fetch(*endpoint, *proxyURL, *debug)
	if err != nil {
		if spinner != nil {
			spinner.Fail(ui.FetchErrorText)
		}
		if *debug {
			log.Printf("fetch error: %v", err)
		}
		os.Exit(1)
	}
	if spinner != nil {
		spinner.Success(fmt.Sprintf("Đã tải %d sản phẩm", len(products)))
	}

	store := catalog.NewStore(*pageSize, models.SortKey(*sortKey))
	store.SetCatalog(products)
	store.SetSearchTerm(*search)

	var prober *imgproxy.Prober
	if !*noImages {
		prober = imgproxy.NewProber(*proxyURL, *debug)
	}

	if *table {
		printTable(store, prober, *page, *noImages)
		return
	}

	session := ui.NewSession(store, prober, *noImages)
	if err := session.Run(); err != nil {
		log.Fatalf("Error running interactive session: %v", err)
	}
}

// printTable renders one page and exits; scripted counterpart of the session
func printTable(store *catalog.Store, prober *imgproxy.Prober, page int, noImages bool) {
	if page != 1 && !store.SetPage(page) {
		pterm.Error.Printfln("Trang %d không tồn tại", page)
		os.Exit(1)
	}

	snap := store.Snapshot()
	var outcomes []imgproxy.Outcome
	if !noImages && len(snap.Page.Items) > 0 {
		bar := pb.StartNew(len(snap.Page.Items))
		resolvers := make([]*imgproxy.Resolver, len(snap.Page.Items))
		for i, p := range snap.Page.Items {
			resolvers[i] = imgproxy.ForProduct(p)
		}
		outcomes = prober.ResolveAll(resolvers, func() { bar.Increment() })
		bar.Finish()
	}

	m := ui.BuildModel(snap, outcomes, noImages)
	fmt.Println(ui.RenderTable(m))
	if !m.Empty {
		fmt.Println(m.Summary)
		fmt.Printf("Trang %d/%d  %s\n", m.Page, m.TotalPages, ui.RenderPagination(m))
	}
}
