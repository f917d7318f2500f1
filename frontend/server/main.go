// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package main

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"cloud.google.com/go/storage"
	"connectrpc.com/connect"
	firebase "firebase.google.com/go/v4"
	"github.com/curioswitch/go-curiostack/otel"
	"github.com/curioswitch/go-curiostack/server"
	"github.com/curioswitch/go-usegcp/middleware/firebaseauth"
	"github.com/go-chi/chi/v5/middleware"
	"google.golang.org/api/idtoken"

	"github.com/curioswitch/larder/common/file"
	"github.com/curioswitch/larder/frontend/api/go/frontendapiconnect"
	"github.com/curioswitch/larder/frontend/server/internal/auth"
	"github.com/curioswitch/larder/frontend/server/internal/config"
	"github.com/curioswitch/larder/frontend/server/internal/discovery"
	"github.com/curioswitch/larder/frontend/server/internal/handler/category"
	discoveryhandler "github.com/curioswitch/larder/frontend/server/internal/handler/discovery"
	"github.com/curioswitch/larder/frontend/server/internal/handler/favorite"
	pantryhandler "github.com/curioswitch/larder/frontend/server/internal/handler/pantry"
	"github.com/curioswitch/larder/frontend/server/internal/handler/profile"
	"github.com/curioswitch/larder/frontend/server/internal/handler/recipe"
	shoppinghandler "github.com/curioswitch/larder/frontend/server/internal/handler/shopping"
	"github.com/curioswitch/larder/frontend/server/internal/i18n"
	"github.com/curioswitch/larder/frontend/server/internal/pantry"
	"github.com/curioswitch/larder/frontend/server/internal/rpc"
	"github.com/curioswitch/larder/frontend/server/internal/shopping"
	"github.com/curioswitch/larder/frontend/server/internal/store"
	"github.com/curioswitch/larder/frontend/server/internal/upload"
)

//go:embed conf/*.yaml
var confFiles embed.FS

func main() {
	conf, _ := fs.Sub(confFiles, "conf")
	os.Exit(server.Main(&config.Config{}, conf, setupServer))
}

func setupServer(ctx context.Context, conf *config.Config, s *server.Server) error {
	mux := server.Mux(s)

	fbApp, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: conf.Google.Project})
	if err != nil {
		return fmt.Errorf("main: create firebase app: %w", err)
	}

	fbAuth, err := fbApp.Auth(ctx)
	if err != nil {
		return fmt.Errorf("main: create firebase auth client: %w", err)
	}

	firestore, err := fbApp.Firestore(ctx)
	if err != nil {
		return fmt.Errorf("main: create firestore client: %w", err)
	}
	defer func() {
		if err := firestore.Close(); err != nil {
			slog.ErrorContext(ctx, "main: close firestore client", "error", err)
		}
	}()

	var stores map[upload.Bucket]upload.ObjectStore
	switch conf.Storage.Backend {
	case config.StorageBackendSupabase:
		sb := conf.Storage.Supabase
		stores = map[upload.Bucket]upload.ObjectStore{
			upload.BucketProfile: file.NewSupabaseIO(http.DefaultClient, sb.URL, sb.ServiceKey, conf.Storage.ProfileBucket),
			upload.BucketRecipe:  file.NewSupabaseIO(http.DefaultClient, sb.URL, sb.ServiceKey, conf.Storage.RecipeBucket),
			upload.BucketPantry:  file.NewSupabaseIO(http.DefaultClient, sb.URL, sb.ServiceKey, conf.Storage.PantryBucket),
		}
	case config.StorageBackendGCS, "":
		gcs, err := storage.NewGRPCClient(ctx)
		if err != nil {
			return fmt.Errorf("main: create storage client: %w", err)
		}
		defer func() {
			if err := gcs.Close(); err != nil {
				slog.ErrorContext(ctx, "main: close storage client", "error", err)
			}
		}()
		stores = map[upload.Bucket]upload.ObjectStore{
			upload.BucketProfile: file.NewIO(gcs, conf.Storage.ProfileBucket),
			upload.BucketRecipe:  file.NewIO(gcs, conf.Storage.RecipeBucket),
			upload.BucketPantry:  file.NewIO(gcs, conf.Storage.PantryBucket),
		}
	default:
		return fmt.Errorf("main: unknown storage backend %q", conf.Storage.Backend)
	}
	uploader := upload.NewUploader(stores)

	audience := conf.Discovery.Audience
	if audience == "" {
		audience = conf.Discovery.URL
	}
	discoveryTokens, err := idtoken.NewTokenSource(ctx, audience)
	if err != nil {
		return fmt.Errorf("main: create discovery token source: %w", err)
	}
	discoveryClient := discovery.New(conf.Discovery.URL, discoveryTokens)

	categories := store.NewCategoryStore(firestore)
	recipes := store.NewRecipeStore(firestore)
	favorites := store.NewFavoriteStore(firestore)
	profiles := store.NewProfileStore(firestore)
	pantries := pantry.NewRegistry()
	lists := shopping.NewRegistry()

	fbMW := firebaseauth.NewMiddleware(fbAuth)
	authMW := auth.Middleware()
	mux.Use(middleware.Maybe(func(next http.Handler) http.Handler {
		return fbMW(authMW(next))
	}, func(r *http.Request) bool {
		switch {
		case strings.HasPrefix(r.URL.Path, "/internal/"):
			return false
		default:
			return true
		}
	}))

	mux.Use(i18n.Middleware())

	opts := connect.WithInterceptors(otel.ConnectInterceptor())

	categoryHandler := category.NewHandler(categories)
	rpc.HandleUnary(mux, frontendapiconnect.FrontendServiceListCategoriesProcedure, categoryHandler.ListCategories, opts)
	rpc.HandleUnary(mux, frontendapiconnect.FrontendServiceCreateCategoryProcedure, categoryHandler.CreateCategory, opts)
	rpc.HandleUnary(mux, frontendapiconnect.FrontendServiceReconcileRecipeCountsProcedure, categoryHandler.ReconcileRecipeCounts, opts)
	rpc.HandleUnary(mux, frontendapiconnect.FrontendServiceDeleteCategoryProcedure, categoryHandler.DeleteCategory, opts)

	recipeHandler := recipe.NewHandler(recipes, favorites, uploader)
	rpc.HandleUnary(mux, frontendapiconnect.FrontendServiceListRecipesProcedure, recipeHandler.ListRecipes, opts)
	rpc.HandleUnary(mux, frontendapiconnect.FrontendServiceGetRecipeProcedure, recipeHandler.GetRecipe, opts)
	rpc.HandleUnary(mux, frontendapiconnect.FrontendServiceAddRecipeProcedure, recipeHandler.AddRecipe, opts)
	rpc.HandleUnary(mux, frontendapiconnect.FrontendServiceUpdateRecipeProcedure, recipeHandler.UpdateRecipe, opts)
	rpc.HandleUnary(mux, frontendapiconnect.FrontendServiceDeleteRecipeProcedure, recipeHandler.DeleteRecipe, opts)

	favoriteHandler := favorite.NewHandler(favorites)
	rpc.HandleUnary(mux, frontendapiconnect.FrontendServiceAddFavoriteProcedure, favoriteHandler.AddFavorite, opts)
	rpc.HandleUnary(mux, frontendapiconnect.FrontendServiceRemoveFavoriteProcedure, favoriteHandler.RemoveFavorite, opts)
	rpc.HandleUnary(mux, frontendapiconnect.FrontendServiceIsFavoriteProcedure, favoriteHandler.IsFavorite, opts)
	rpc.HandleUnary(mux, frontendapiconnect.FrontendServiceListFavoritesProcedure, favoriteHandler.ListFavorites, opts)

	pantryHandler := pantryhandler.NewHandler(pantries, uploader)
	rpc.HandleUnary(mux, frontendapiconnect.FrontendServiceLoadPantryItemProcedure, pantryHandler.LoadPantryItem, opts)
	rpc.HandleUnary(mux, frontendapiconnect.FrontendServiceUpdatePantryDraftProcedure, pantryHandler.UpdatePantryDraft, opts)
	rpc.HandleUnary(mux, frontendapiconnect.FrontendServiceSavePantryItemProcedure, pantryHandler.SavePantryItem, opts)
	rpc.HandleUnary(mux, frontendapiconnect.FrontendServiceRemovePantryItemProcedure, pantryHandler.RemovePantryItem, opts)
	rpc.HandleUnary(mux, frontendapiconnect.FrontendServiceListPantryItemsProcedure, pantryHandler.ListPantryItems, opts)
	rpc.HandleUnary(mux, frontendapiconnect.FrontendServiceTogglePantryFavoriteProcedure, pantryHandler.TogglePantryFavorite, opts)
	rpc.HandleUnary(mux, frontendapiconnect.FrontendServiceUploadPantryImageProcedure, pantryHandler.UploadPantryImage, opts)
	rpc.HandleServerStream(mux, frontendapiconnect.FrontendServiceWatchPantryItemsProcedure, pantryHandler.WatchPantryItems, opts)

	shoppingHandler := shoppinghandler.NewHandler(lists, pantries, recipes)
	rpc.HandleUnary(mux, frontendapiconnect.FrontendServiceCreateShoppingListProcedure, shoppingHandler.CreateShoppingList, opts)
	rpc.HandleUnary(mux, frontendapiconnect.FrontendServiceListShoppingListsProcedure, shoppingHandler.ListShoppingLists, opts)
	rpc.HandleUnary(mux, frontendapiconnect.FrontendServiceAddShoppingItemProcedure, shoppingHandler.AddShoppingItem, opts)
	rpc.HandleUnary(mux, frontendapiconnect.FrontendServiceRemoveShoppingItemProcedure, shoppingHandler.RemoveShoppingItem, opts)
	rpc.HandleUnary(mux, frontendapiconnect.FrontendServiceToggleShoppingItemProcedure, shoppingHandler.ToggleShoppingItem, opts)
	rpc.HandleUnary(mux, frontendapiconnect.FrontendServiceDeleteShoppingListProcedure, shoppingHandler.DeleteShoppingList, opts)
	rpc.HandleUnary(mux, frontendapiconnect.FrontendServiceGenerateShoppingListProcedure, shoppingHandler.GenerateShoppingList, opts)

	discoveryHandler := discoveryhandler.NewHandler(discoveryClient, recipes)
	rpc.HandleUnary(mux, frontendapiconnect.FrontendServiceGetRandomRecipesProcedure, discoveryHandler.GetRandomRecipes, opts)
	rpc.HandleUnary(mux, frontendapiconnect.FrontendServiceSearchRecipesProcedure, discoveryHandler.SearchRecipes, opts)
	rpc.HandleUnary(mux, frontendapiconnect.FrontendServiceGetDiscoveredRecipeProcedure, discoveryHandler.GetDiscoveredRecipe, opts)
	rpc.HandleUnary(mux, frontendapiconnect.FrontendServiceSaveDiscoveredRecipeProcedure, discoveryHandler.SaveDiscoveredRecipe, opts)

	profileHandler := profile.NewHandler(profiles, uploader, fbAuth, pantries, lists)
	rpc.HandleUnary(mux, frontendapiconnect.FrontendServiceRegisterProfileProcedure, profileHandler.RegisterProfile, opts)
	rpc.HandleUnary(mux, frontendapiconnect.FrontendServiceGetProfileProcedure, profileHandler.GetProfile, opts)
	rpc.HandleUnary(mux, frontendapiconnect.FrontendServiceUpdateProfileProcedure, profileHandler.UpdateProfile, opts)
	rpc.HandleUnary(mux, frontendapiconnect.FrontendServiceUpdatePreferencesProcedure, profileHandler.UpdatePreferences, opts)
	rpc.HandleUnary(mux, frontendapiconnect.FrontendServiceDeleteAccountProcedure, profileHandler.DeleteAccount, opts)

	if err := server.Start(ctx, s); err != nil {
		return fmt.Errorf("main: starting server: %w", err)
	}
	return nil
}
