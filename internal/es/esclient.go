package es

import (
	"io"
	"log"

	"github.com/JoaoCurtarelli7/solucao-logistica-sub000/internal/config"
	"github.com/elastic/go-elasticsearch/v9"
)

func NewClient(cfg *config.Config) (*elasticsearch.Client, error) {
	log.Printf("Connecting to Elasticsearch at: %s", cfg.ES_URL)

	esCfg := elasticsearch.Config{
		Addresses: []string{cfg.ES_URL},
		Username:  cfg.ES_USER,
		Password:  cfg.ES_PASSWORD,
	}

	client, err := elasticsearch.NewClient(esCfg)
	if err != nil {
		return nil, err
	}

	res, err := client.Info()
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.IsError() {
		body, _ := io.ReadAll(res.Body)
		log.Printf("Elasticsearch error response: %s", body)
		return nil, errResponse(res.Status())
	}

	log.Println("Successfully connected to Elasticsearch")
	return client, nil
}

type errResponse string

func (e errResponse) Error() string { return "elasticsearch error: " + string(e) }
