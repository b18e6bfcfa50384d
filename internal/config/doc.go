// Package config provides configuration parsing for Soar sites.
//
// The configuration is stored in soar.json (or soar.yaml) at the site
// root. This package handles loading, saving, and validating it.
//
// # Configuration File Structure
//
//	{
//	  "name": "docs",
//	  "render": {
//	    "scopeAttr": "scope",
//	    "hashLength": 6
//	  },
//	  "css": {
//	    "targets": ["chrome109", "firefox115", "safari15.6"],
//	    "minify": true
//	  },
//	  "build": {
//	    "output": "dist"
//	  },
//	  "dev": {
//	    "port": 3000,
//	    "host": "localhost"
//	  },
//	  "publish": {
//	    "bucket": "my-site",
//	    "prefix": "www/",
//	    "region": "eu-west-1"
//	  }
//	}
//
// # Usage
//
//	cfg, err := config.Load(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println("Output:", cfg.OutputPath())
package config
