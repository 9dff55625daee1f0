package usecase

import (
	"context"
	"fmt"
	"time"

	"cinema-ticketing/internal/data/entity"
	"cinema-ticketing/internal/data/repository"
	"cinema-ticketing/internal/dto/request"
	"cinema-ticketing/internal/dto/response"
	"cinema-ticketing/pkg/apperr"

	"go.uber.org/zap"
)

type MovieService interface {
	CreateMovie(ctx context.Context, req *request.CreateMovieRequest) (*response.MovieResponse, error)
	GetMovie(ctx context.Context, id int64) (*response.MovieResponse, error)
	ListMovies(ctx context.Context, limit, offset int) (*response.PaginatedResponse[response.MovieResponse], error)
}

type movieService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewMovieService(repo *repository.Repository, log *zap.Logger) MovieService {
	return &movieService{
		repo: repo,
		log:  log.With(zap.String("service", "movie")),
	}
}

func (s *movieService) CreateMovie(ctx context.Context, req *request.CreateMovieRequest) (*response.MovieResponse, error) {
	movie := &entity.Movie{
		Title:          req.Title,
		Synopsis:       req.Synopsis,
		FilmRatingCode: req.FilmRatingCode,
		CreatedAt:      time.Now().UTC(),
	}

	if err := s.repo.Movie.Create(ctx, movie); err != nil {
		return nil, fmt.Errorf("create movie: %w", err)
	}

	s.log.Info("Movie created",
		zap.Int64("movie_id", movie.ID),
		zap.String("title", movie.Title),
	)

	resp := response.MovieToResponse(movie)
	return &resp, nil
}

func (s *movieService) GetMovie(ctx context.Context, id int64) (*response.MovieResponse, error) {
	movie, err := s.repo.Movie.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find movie: %w", err)
	}
	if movie == nil {
		return nil, apperr.NotFound("Movie not found")
	}

	resp := response.MovieToResponse(movie)
	return &resp, nil
}

func (s *movieService) ListMovies(ctx context.Context, limit, offset int) (*response.PaginatedResponse[response.MovieResponse], error) {
	movies, err := s.repo.Movie.FindAll(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list movies: %w", err)
	}

	total, err := s.repo.Movie.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count movies: %w", err)
	}

	return response.NewPaginatedResponse(response.MoviesToResponse(movies), limit, offset, total), nil
}
