package mocks

//go:generate mockery --name SampleStore --srcpkg github.com/aevon-lab/aevon-duration/internal/core/storage --output ./storage --outpkg storagemocks --with-expecter
//go:generate mockery --name PreAggregateStore --srcpkg github.com/aevon-lab/aevon-duration/internal/aggregation --output ./aggregation --outpkg aggregationmocks --with-expecter
