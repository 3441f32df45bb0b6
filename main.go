package main

import (
	"flag"
	"fmt"
	"os"

	"flipradar/cache"
	"flipradar/catalog"
	"flipradar/config"
	"flipradar/ebay"
	"flipradar/flip"
	"flipradar/search"
	"flipradar/tui"
	"flipradar/web"

	"github.com/rohanthewiz/logger"
	"github.com/rohanthewiz/serr"
)

func main() {
	var (
		terminal   bool
		configPath string
	)
	flag.BoolVar(&terminal, "tui", false, "run the terminal frontend against search.base_url")
	flag.StringVar(&configPath, "config", "", "path to a config file (default: ./config.yaml or ~/.config/flipradar/config.yaml)")
	flag.Parse()

	if err := run(terminal, configPath); err != nil {
		logger.LogErr(err, "flipradar exited")
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(terminal bool, configPath string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	if terminal {
		// Log lines would tear the alternate screen
		logger.SetLogLevel("error")
		return tui.Run(search.NewClient(cfg.Search.BaseURL), cfg.Search.BaseURL)
	}

	logger.SetLogLevel(cfg.Logging.Level)
	if !cfg.HasCatalogKeys() {
		logger.Info("TCGplayer keys not set, searches will fail until FLIPRADAR_TCGPLAYER_PUBLIC_KEY and FLIPRADAR_TCGPLAYER_PRIVATE_KEY are provided")
	}
	if !cfg.HasEbayKeys() {
		logger.Info("eBay keys not set, the radar will fail until FLIPRADAR_EBAY_CLIENT_ID and FLIPRADAR_EBAY_CLIENT_SECRET are provided")
	}

	ttl := cache.New(cfg.Cache.TTL)

	tcg := catalog.NewClient(catalog.Options{
		PublicKey:  cfg.TCGplayer.PublicKey,
		PrivateKey: cfg.TCGplayer.PrivateKey,
		AuthURL:    cfg.TCGplayer.AuthURL,
		APIBase:    cfg.TCGplayer.APIBase,
		Timeout:    cfg.TCGplayer.Timeout,
	}, ttl)

	listings := ebay.NewClient(ebay.Options{
		ClientID:      cfg.Ebay.ClientID,
		ClientSecret:  cfg.Ebay.ClientSecret,
		MarketplaceID: cfg.Ebay.MarketplaceID,
		TokenURL:      cfg.Ebay.TokenURL,
		BrowseURL:     cfg.Ebay.BrowseURL,
		Timeout:       cfg.Ebay.Timeout,
	}, ttl)

	radar := flip.Analyzer{
		Source: listings,
		Assumptions: flip.Assumptions{
			FeeRate:            cfg.Flip.FeeRate,
			RiskBufferRate:     cfg.Flip.RiskBufferRate,
			DefaultShippingUSD: cfg.Flip.DefaultShippingUSD,
		},
		Thresholds: flip.Thresholds{
			MinConfidence: cfg.Flip.MinConfidence,
			MinDiscount:   cfg.Flip.MinDiscount,
			MinProfitUSD:  cfg.Flip.MinProfitUSD,
		},
		LiveLimit: cfg.Ebay.LiveLimit,
		SoldLimit: cfg.Ebay.SoldLimit,
	}

	srv := web.NewServer(cfg.Server, web.Deps{
		Catalog:     tcg,
		Radar:       radar,
		SearchLimit: cfg.TCGplayer.SearchLimit,
	})
	return web.Run(srv, cfg.Server.Address)
}

func loadConfig(path string) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if path != "" {
		cfg, err = config.LoadFile(path)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, serr.Wrap(err, "failed to load config")
	}
	return cfg, nil
}
