package mocks

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name UpstreamFetcher --dir ../usecase --output usecase --outpkg usecasemock --filename upstream_fetcher_mock.go
