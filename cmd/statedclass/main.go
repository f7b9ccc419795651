/* Copyright 2018-2019 Comcast Cable Communications Management, LLC
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 * http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package main is a command-line tool for stated classes defined in
// YAML.
//
//   statedclass list -f demo.yaml
//   statedclass call -f demo.yaml -c acme/Article -s Draft -m publish
//   statedclass mermaid -f demo.yaml -c acme/Article > article.mermaid
//
package main

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"os"

	"github.com/Comcast/states/loader"
	"github.com/Comcast/states/util"

	"github.com/jsccast/yaml"
)

func main() {

	if len(os.Args) < 2 {
		Usage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "yamltojson":
		bs, err := ioutil.ReadAll(os.Stdin)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		if bs, err = YAMLToJSON(bs); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		if _, err = os.Stdout.Write(bs); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}

	default:
		mod, have := Mods[os.Args[1]]
		if !have {
			fmt.Printf("Unknown subcommand \"%s\"\n", os.Args[1])
			Usage()
			os.Exit(1)
		}

		if err := mod.Flags().Parse(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}

		if err := Run(mod, os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	}
}

// YAMLToJSON converts a document of class specifications to JSON.
func YAMLToJSON(bs []byte) ([]byte, error) {
	var doc loader.Document
	if err := yaml.Unmarshal(bs, &doc); err != nil {
		return nil, err
	}
	return json.MarshalIndent(&doc, "", "  ")
}

func Usage() {
	fmt.Printf("Subcommands:\n\n")
	for _, name := range ModNames() {
		mod := Mods[name]
		mod.Flags().Usage()
		fmt.Println("  " + mod.Doc())
		fmt.Println()
	}
	fmt.Printf("Usage of yamltojson: (no arguments, reads stdin)\n\n")
	fmt.Printf("Set STATES_VERBOSE=true to log.\n")
}

func init() {
	util.Logging = os.Getenv("STATES_VERBOSE") == "true"
}
