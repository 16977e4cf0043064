package main

import (
	"context"
	"flag"
	"log"
	"net/url"
	"path"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/ahdhani/boilerplate/cmd/apiserv/handlers"
	bindproducts "github.com/ahdhani/boilerplate/pkg/api-types-binding/products"
	"github.com/ahdhani/boilerplate/pkg/api/types/products"
	kcs "github.com/ahdhani/boilerplate/pkg/configs/server"
	kdb "github.com/ahdhani/boilerplate/pkg/db"
	kpg "github.com/ahdhani/boilerplate/pkg/db/postgres"
	"github.com/ahdhani/boilerplate/pkg/domain"
	"github.com/ahdhani/boilerplate/pkg/echoutil"
	"github.com/ahdhani/boilerplate/pkg/service"
	"github.com/ahdhani/boilerplate/pkg/utils/filewatch"
	kstrings "github.com/ahdhani/boilerplate/pkg/utils/strings"
)

func main() {

	configPath := flag.String("config-path", "", "server config path")
	loglevel := flag.String("loglevel", "info", "log level. debug|info|warn|error|off")
	schemaRepository := flag.String(
		"schema-repository", "",
		"path to schema definitions. overrides the config file when given",
	)
	pcert := flag.String("cert", "", "certification file for TLS")
	pkey := flag.String("certkey", "", "key of certification file for TLS")
	flag.Parse()

	e := echo.New()
	e.Pre(middleware.AddTrailingSlash())

	// set log
	echoutil.SetLevel(e, *loglevel)
	e.HTTPErrorHandler = echoutil.ErrorHandler(e)
	e.Use(echoutil.LogHandlerFunc)
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.CORS())

	// read configfile
	conf, err := kcs.LoadServerConfig(*configPath)
	if err != nil {
		log.Fatalf("can not read configration: %s", err)
	}
	if *schemaRepository != "" {
		conf.SchemaRepository = *schemaRepository
	}

	{
		ctx, cancel, err := filewatch.UntilModifyContext(context.Background(), *configPath)
		if err != nil {
			log.Fatalf("can not watch configration: %s", err)
		}
		defer cancel()
		context.AfterFunc(ctx, func() {
			log.Println("config file is updated. quit to restart server.")
			graceful, cancel := context.WithTimeout(context.Background(), 15*time.Second)
			defer cancel()
			if err := e.Shutdown(graceful); err != nil {
				log.Printf("error on shutdown by config update: %s", err)
			}
		})
	}

	api, err := root("/api/v1")
	if err != nil {
		log.Fatalf("api root /api/v1 is invalid url or path: %s", err)
	}

	// get dbaccesor
	ctx := context.Background()
	db, err := getDBAccesor(ctx, conf)
	if err != nil {
		log.Fatalf("can not connect database: %s", err.Error())
	}
	defer db.Close()

	if conf.SchemaRepository != "" {
		if err := db.Schema().Upgrade(ctx); err != nil {
			log.Fatalf("can not upgrade database schema: %s", err)
		}
		version, err := db.Schema().Version(ctx)
		if err != nil {
			log.Fatalf("can not detect database schema version: %s", err)
		}
		log.Printf("database schema is at version %d", version)
	}

	// handlers
	{
		var productSvc handlers.CrudService[domain.Product, products.Spec] = service.NewProduct(db.Product())

		e.GET(api("product"), handlers.ListHandler(productSvc, bindproducts.ComposeDetail))
		e.POST(api("product"), handlers.CreateHandler(productSvc, bindproducts.ComposeDetail))

		e.GET(api("product/:id/"), handlers.GetHandler(productSvc, bindproducts.ComposeDetail))
		e.DELETE(api("product/:id/"), handlers.DeleteHandler(productSvc))
	}

	e.GET("/health/", handlers.HealthCheckHandler())

	if conf.DocsEnabled() {
		e.GET("/docs/", handlers.DocsHandler(e))
	}

	log.Println("registred routes:")
	for _, r := range e.Routes() {
		log.Println(r.Method, r.Path)
	}

	cert, key := *pcert, *pkey
	if cert != "" && key != "" {
		e.Logger.Fatal(e.StartTLS(":"+conf.ServerPort, cert, key))
	} else {
		e.Logger.Fatal(e.Start(":" + conf.ServerPort))
	}
}

func getDBAccesor(ctx context.Context, conf *kcs.ServerConfig) (kdb.Database, error) {
	options := []kpg.Option{}
	if conf.SchemaRepository != "" {
		options = append(options, kpg.WithSchemaRepository(conf.SchemaRepository))
	}
	return kpg.New(ctx, conf.DBURI, options...)
}

// create api URL factory
//
// args:
//   - root: api root
//
// return:
// - func: it receive relative path from root, and returns full-path of URL.
func root(r string) (func(...string) string, error) {
	base := ""
	{
		b, err := url.Parse(r)
		if err != nil {
			return nil, err
		}
		base = b.Path
	}

	return func(s ...string) string {
		parts := make([]string, len(s)+1)
		parts[0] = base
		copy(parts[1:], s)
		p := path.Join(parts...)
		p = "/" + kstrings.TrimPrefixAll(p, "/")

		return kstrings.SuppySuffix(p, "/")
	}, nil
}
