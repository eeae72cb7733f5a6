package clickhouse

import (
	"time"

	"github.com/golang/mock/gomock"
	"github.com/yangcoin/bitcore-node/internal/model"
)

func (s *RepositorySuite) TestInsertBlock() {
	now := time.Now().UTC().Truncate(time.Second)

	s.metrics.EXPECT().Observe("insert_block", model.Regtest, gomock.Nil(), gomock.Any()).Times(2)

	s.Require().NoError(s.repo.InsertBlock(s.testCtx, newBlockRow(0, "a", now)))
	s.Require().NoError(s.repo.InsertBlock(s.testCtx, newBlockRow(1, "b", now.Add(time.Second))))
	s.Equal(uint64(2), s.countRows("blocks"))
}

func (s *RepositorySuite) TestDeleteBlockRemovesOnlyTarget() {
	now := time.Now().UTC().Truncate(time.Second)
	abandoned := newBlockRow(1, "b", now)

	s.metrics.EXPECT().Observe("insert_block", model.Regtest, gomock.Nil(), gomock.Any()).Times(2)
	s.metrics.EXPECT().Observe("delete_block", model.Regtest, gomock.Nil(), gomock.Any()).Times(1)

	s.Require().NoError(s.repo.InsertBlock(s.testCtx, newBlockRow(0, "a", now)))
	s.Require().NoError(s.repo.InsertBlock(s.testCtx, abandoned))

	s.Require().NoError(s.repo.DeleteBlock(s.testCtx, model.Regtest, abandoned.Hash))
	s.Equal(uint64(1), s.countRows("blocks"))
}
