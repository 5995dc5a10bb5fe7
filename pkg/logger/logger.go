package logger

import (
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	once      sync.Once
	defLogger *zap.Logger
)

// Options 日志选项
type Options struct {
	Level  string // debug / info / warn / error
	Format string // console / json
	Output string // console / file / both

	// 文件输出与轮转（Output 含 file 时生效）
	Filename   string
	MaxSize    int // 单文件上限 MB
	MaxBackups int
	MaxAge     int // 保留天数
	Compress   bool
}

// Init 初始化全局日志实例，重复调用只生效一次
func Init(opts Options) {
	once.Do(func() {
		defLogger = New(opts)
	})
}

// New 创建日志实例
func New(opts Options) *zap.Logger {
	level := parseLevel(opts.Level)

	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "time",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		FunctionKey:    zapcore.OmitKey,
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.SecondsDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}

	var encoder zapcore.Encoder
	if opts.Format == "json" {
		encoder = zapcore.NewJSONEncoder(encoderConfig)
	} else {
		encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
	}

	var cores []zapcore.Core
	switch opts.Output {
	case "file":
		cores = append(cores, zapcore.NewCore(encoder, fileWriter(opts), level))
	case "both":
		cores = append(cores, zapcore.NewCore(encoder, zapcore.AddSync(os.Stdout), level))
		cores = append(cores, zapcore.NewCore(encoder, fileWriter(opts), level))
	default:
		cores = append(cores, zapcore.NewCore(encoder, zapcore.AddSync(os.Stdout), level))
	}

	return zap.New(zapcore.NewTee(cores...),
		zap.AddCaller(),
		zap.AddStacktrace(zapcore.ErrorLevel),
	)
}

// Get 获取全局日志实例，未初始化时退化为控制台 debug 输出
func Get() *zap.Logger {
	if defLogger == nil {
		defLogger = New(Options{Level: "debug", Format: "console", Output: "console"})
	}
	return defLogger
}

// Sync 刷出缓冲的日志
func Sync() error {
	if defLogger != nil {
		return defLogger.Sync()
	}
	return nil
}

func parseLevel(level string) zapcore.Level {
	switch level {
	case "debug":
		return zapcore.DebugLevel
	case "info":
		return zapcore.InfoLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// fileWriter 带轮转的文件输出
func fileWriter(opts Options) zapcore.WriteSyncer {
	dir := filepath.Dir(opts.Filename)
	if err := os.MkdirAll(dir, 0755); err != nil {
		panic(err)
	}
	return zapcore.AddSync(&lumberjack.Logger{
		Filename:   opts.Filename,
		MaxSize:    opts.MaxSize,
		MaxBackups: opts.MaxBackups,
		MaxAge:     opts.MaxAge,
		Compress:   opts.Compress,
	})
}
