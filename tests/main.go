// Seeds the catalog with sample trails and optionally promotes an account to
// admin. Uses the same STORE_DRIVER configuration as the server.
package main

import (
	"context"
	"time"

	"trilhas/config"
	"trilhas/database"
	trailRepo "trilhas/database/repository/trail"
	"trilhas/models"
	"trilhas/utils"

	"github.com/spf13/viper"
	"go.uber.org/zap"
)

type sampleTrail struct {
	guide, name, location, difficulty, date, description string
	image                                                int
}

var samples = []sampleTrail{
	{"Ana Souza", "Pico do Jaraguá", "São Paulo, SP", "Fácil", "12/04", "Subida curta até o ponto mais alto da cidade.", 0},
	{"Bruno Lima", "Pedra Grande", "Atibaia, SP", "Moderada", "19/04", "Trilha com vista para o Vale do Paraíba.", 1},
	{"Carla Dias", "Pico dos Marins", "Piquete, SP", "Difícil", "03/05", "Travessia longa com trechos de escalaminhada.", 2},
	{"Diego Alves", "Trilha do Ouro", "Serra da Bocaina, RJ", "Difícil", "17/05", "Caminho histórico em três dias.", 3},
	{"Elisa Rocha", "Cachoeira do Tabuleiro", "Conceição do Mato Dentro, MG", "Moderada", "31/05", "Descida até o poço da cachoeira.", 4},
	{"Felipe Nunes", "Morro do Anhangava", "Quatro Barras, PR", "Fácil", "14/06", "Trilha curta com nascer do sol.", 5},
}

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	fb, err := utils.FirebaseInit(ctx, config.AppConfig.StoreDriver == config.StoreFirestore)
	if err != nil {
		logger.Sugar().Fatalf("seed: failed to initialize firebase: %v", err)
	}
	store, err := database.OpenStore(fb.Firestore)
	if err != nil {
		logger.Sugar().Fatalf("seed: failed to open store: %v", err)
	}
	defer store.Close()

	if uid := viper.GetString("SEED_ADMIN_UID"); uid != "" {
		err := store.Set(ctx, models.UserCollection, uid, map[string]any{
			models.FieldEmail:     viper.GetString("SEED_ADMIN_EMAIL"),
			models.FieldRole:      string(models.RoleAdmin),
			models.FieldCreatedAt: models.Timestamp(time.Now()),
		})
		if err != nil {
			logger.Sugar().Fatalf("seed: failed to promote %s: %v", uid, err)
		}
		logger.Info("seed: promoted account to admin", zap.String("uid", uid))
	}

	catalog := trailRepo.NewStoreCatalogRepo(store, config.AppConfig.BannerCount)
	existing, err := catalog.ListTrails(ctx)
	if err != nil {
		logger.Sugar().Fatalf("seed: failed to list trails: %v", err)
	}
	names := make(map[string]bool, len(existing))
	for _, t := range existing {
		names[t.TrailName] = true
	}

	created := 0
	for _, s := range samples {
		if names[s.name] {
			continue
		}
		in := models.TrailInput{
			GuideName:   &s.guide,
			TrailName:   &s.name,
			Location:    &s.location,
			Difficulty:  &s.difficulty,
			Date:        &s.date,
			Description: &s.description,
			ImageIndex:  s.image,
		}
		trail, err := catalog.CreateTrail(ctx, in, models.RoleAdmin)
		if err != nil {
			logger.Sugar().Fatalf("seed: failed to create %q: %v", s.name, err)
		}
		logger.Debug("seed: trail created", zap.String("id", trail.ID), zap.String("name", trail.TrailName))
		created++
	}
	logger.Sugar().Infof("seed: %d trails created, %d already present", created, len(samples)-created)
}
