package database

import (
	"Fundoo/config"
	"Fundoo/models"
	"Fundoo/pkg/log"
	"fmt"

	"github.com/glebarez/sqlite"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/plugin/dbresolver"
)

// NewDB 初始化数据库连接
func NewDB(conf *config.Config) *gorm.DB {
	db, err := Open(conf)
	if err != nil {
		log.L.Fatal("failed to connect database", zap.Error(err))
	}
	log.L.Info("connect database success", zap.String("driver", conf.MySQL.Driver))
	return db
}

// Open 按配置的驱动打开数据库，mysql 下注册只读从库
func Open(conf *config.Config) (*gorm.DB, error) {
	gormConf := &gorm.Config{TranslateError: true}
	if !conf.Debug() {
		gormConf.Logger = logger.Default.LogMode(logger.Warn)
	}

	switch conf.MySQL.Driver {
	case config.DriverSQLite:
		return OpenSQLite(conf.MySQL.Database)
	case config.DriverMySQL:
	default:
		return nil, fmt.Errorf("unsupported database driver %q", conf.MySQL.Driver)
	}

	db, err := gorm.Open(mysql.Open(conf.MySQL.Dsn()), gormConf)
	if err != nil {
		return nil, err
	}

	// 配置读写分离
	if len(conf.MySQL.Replicas) > 0 {
		replicas := make([]gorm.Dialector, 0, len(conf.MySQL.Replicas))
		for _, r := range conf.MySQL.Replicas {
			replicas = append(replicas, mysql.Open(r))
		}
		err = db.Use(dbresolver.Register(dbresolver.Config{
			Replicas: replicas,
			Policy:   dbresolver.RandomPolicy{},
		}))
		if err != nil {
			log.L.Warn("register read replicas failed", zap.Error(err))
		}
	}
	return db, nil
}

// OpenSQLite 打开 sqlite 数据库文件并同步表结构
func OpenSQLite(path string) (*gorm.DB, error) {
	dsn := path + "?_pragma=busy_timeout(5000)"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}
	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate 同步表结构
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Note{},
		&models.Label{},
		&models.NoteCollaborator{},
		&models.ReminderJob{},
	)
}
